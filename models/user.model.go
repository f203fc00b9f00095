package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a password-based account. Legacy records may still carry a
// plain-text password; login handles both.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username    string             `bson:"username" json:"username"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password,omitempty" json:"-"`
	CountryCode string             `bson:"country_code,omitempty" json:"country_code,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB         string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// GoogleUser is a federated account created on first OAuth login. Together
// with User it forms one logical identity keyed by email.
type GoogleUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GoogleID    string             `bson:"google_id" json:"google_id"`
	Username    string             `bson:"username" json:"username"`
	Email       string             `bson:"email" json:"email"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CountryCode string             `bson:"country_code,omitempty" json:"country_code,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB         string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// Identity is the common user shape returned by the dual-partition lookup.
// Callers never branch on which partition it came from.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// AccountSummary is the admin view of a user, annotated with its partition.
type AccountSummary struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	LoginMethod string    `json:"loginMethod"` // "email" or "google"
	CreatedAt   time.Time `json:"createdAt"`
}
