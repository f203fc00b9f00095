package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is a one-time password-reset code tied to an email. A TTL index on
// created_at sweeps stale codes; consumption re-checks the age so a code
// never validates after its window.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"otp" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
