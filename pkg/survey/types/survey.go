package types

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SURVEY_STATUS_DRAFT     = "DRAFT"
	SURVEY_STATUS_PUBLISHED = "PUBLISHED"
)

const (
	QUESTION_TYPE_SINGLE_CHOICE   = "SINGLE_CHOICE"
	QUESTION_TYPE_MULTIPLE_CHOICE = "MULTIPLE_CHOICE"
	QUESTION_TYPE_TEXT            = "TEXT"
)

type Survey struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey         string             `bson:"surveyKey" json:"surveyKey"`
	Title             string             `bson:"title" json:"title"`
	Region            string             `bson:"region,omitempty" json:"region,omitempty"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty"`
	Goal              string             `bson:"goal,omitempty" json:"goal,omitempty"`
	Status            string             `bson:"status" json:"status"`
	IsPublic          bool               `bson:"isPublic" json:"isPublic"`
	Questions         []Question         `bson:"questions" json:"questions"`
	Reward            *RewardConfig      `bson:"reward,omitempty" json:"reward,omitempty"`
	CreatedBy         string             `bson:"createdBy" json:"createdBy"`
	CreatedAt         int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt         int64              `bson:"updatedAt" json:"updatedAt"`
	TotalParticipants int64              `bson:"totalParticipants" json:"totalParticipants"`
}

type Question struct {
	ID            string         `bson:"id" json:"id"`
	Text          string         `bson:"text" json:"text"`
	Type          string         `bson:"type" json:"type"`
	Options       []string       `bson:"options,omitempty" json:"options,omitempty"`
	BranchingRule *BranchingRule `bson:"branchingRule,omitempty" json:"branchingRule,omitempty"`
}

// BranchingRule makes a question conditional on a previous answer.
type BranchingRule struct {
	DependsOn string `bson:"dependsOn" json:"dependsOn"`
	Equals    string `bson:"equals" json:"equals"`
}

func (q Question) IsChoiceType() bool {
	return q.Type == QUESTION_TYPE_SINGLE_CHOICE || q.Type == QUESTION_TYPE_MULTIPLE_CHOICE
}

// ValidateQuestions checks question ids for uniqueness and branching rules for
// forward or cyclic references. A rule may only depend on a question that
// appears earlier in the sequence.
func ValidateQuestions(questions []Question) error {
	seen := map[string]struct{}{}
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question at index %d has no id", i)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("duplicate question id: %s", q.ID)
		}
		if q.IsChoiceType() && len(q.Options) == 0 {
			return fmt.Errorf("question %s is a choice type but has no options", q.ID)
		}
		if !q.IsChoiceType() && len(q.Options) > 0 {
			return fmt.Errorf("question %s is a text type but has options", q.ID)
		}
		if q.BranchingRule != nil {
			if _, ok := seen[q.BranchingRule.DependsOn]; !ok {
				return fmt.Errorf("question %s depends on %s which does not appear earlier in the sequence", q.ID, q.BranchingRule.DependsOn)
			}
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
