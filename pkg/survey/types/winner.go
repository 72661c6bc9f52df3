package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	WINNER_STATUS_PENDING   = "PENDING"
	WINNER_STATUS_SENT      = "SENT"
	WINNER_STATUS_CONFIRMED = "CONFIRMED"
	WINNER_STATUS_FAILED    = "FAILED"
)

// Winner is one reward recipient of a draw, keyed by (surveyKey, userID).
type Winner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey string             `bson:"surveyKey" json:"surveyKey"`
	UserID    string             `bson:"userID" json:"userId"`
	Contact   string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Notified  bool               `bson:"notified" json:"notified"`
	DrawnAt   int64              `bson:"drawnAt" json:"drawnAt"`
	TxHash    string             `bson:"txHash,omitempty" json:"txHash,omitempty"`
	Network   string             `bson:"network,omitempty" json:"network,omitempty"`
}

// ArchivedDraw preserves a survey's winner set before it is replaced by a
// re-draw.
type ArchivedDraw struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyKey  string             `bson:"surveyKey" json:"surveyKey"`
	ArchivedAt int64              `bson:"archivedAt" json:"archivedAt"`
	Winners    []Winner           `bson:"winners" json:"winners"`
}
