package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	CREATOR_ROLE_BUSINESS = "BUSINESS"
	CREATOR_ROLE_GOV      = "GOV"
	CREATOR_ROLE_CITIZEN  = "CITIZEN"
)

// CreatorProfile is a survey creator account. The phone number is never
// stored in clear text: PhoneHash is a deterministic keyed hash used as the
// lookup key, AccessCodeHash is the argon2id hash of the creator's access
// code.
type CreatorProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PhoneHash      string             `bson:"phoneHash" json:"-"`
	AccessCodeHash string             `bson:"accessCodeHash" json:"-"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
}
