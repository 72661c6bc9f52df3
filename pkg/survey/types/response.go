package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type SurveyResponse struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ResponseID    string             `bson:"responseID" json:"responseId"`
	SurveyKey     string             `bson:"surveyKey" json:"surveyKey"`
	SubmittedAt   int64              `bson:"submittedAt" json:"submittedAt"`
	Answers       map[string]Answer  `bson:"answers" json:"answers"`
	RewardAddress string             `bson:"rewardAddress,omitempty" json:"rewardAddress,omitempty"`
	Metadata      ResponseMetadata   `bson:"metadata" json:"metadata"`
}

// Answer holds exactly one of the three answer shapes: a single selected
// option, a list of selected options or free text.
type Answer struct {
	Option  string   `bson:"option,omitempty" json:"option,omitempty"`
	Options []string `bson:"options,omitempty" json:"options,omitempty"`
	Text    string   `bson:"text,omitempty" json:"text,omitempty"`
}

type ResponseMetadata struct {
	AgeGroup    string `bson:"ageGroup,omitempty" json:"ageGroup,omitempty"`
	Gender      string `bson:"gender,omitempty" json:"gender,omitempty"`
	TimeBucket  string `bson:"timeBucket,omitempty" json:"timeBucket,omitempty"`
	Fingerprint string `bson:"fingerprint,omitempty" json:"fingerprint,omitempty"`
}

// HasAnswers reports whether at least one question was answered. Responses
// without answers are excluded from reward draws.
func (r SurveyResponse) HasAnswers() bool {
	return len(r.Answers) > 0
}

// WinnerUserID returns the identity a winner record should be keyed by:
// the respondent's fingerprint, falling back to the response id.
func (r SurveyResponse) WinnerUserID() string {
	if r.Metadata.Fingerprint != "" {
		return r.Metadata.Fingerprint
	}
	return r.ResponseID
}
