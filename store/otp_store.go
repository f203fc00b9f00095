package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brew-commerce/models"
)

// otpTTL is how long a password-reset code stays valid.
const otpTTL = 5 * time.Minute

// OTPStore persists password-reset codes. Issuing a new code replaces any
// previous codes for the same email; codes older than otpTTL are rejected at
// consumption and swept by a TTL index.
type OTPStore struct {
	collection *mongo.Collection
}

func NewOTPStore(db *mongo.Database) *OTPStore {
	return &OTPStore{collection: db.Collection("otps")}
}

// EnsureIndexes creates the TTL index that removes expired codes.
func (s *OTPStore) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(otpTTL / time.Second)),
	}
	if _, err := s.collection.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create otp ttl index: %w", err)
	}
	return nil
}

// Replace deletes any outstanding codes for the email and stores the new one.
func (s *OTPStore) Replace(ctx context.Context, email, code string) error {
	email = strings.ToLower(email)
	if _, err := s.collection.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete previous otps: %w", err)
	}
	otp := models.OTP{Email: email, Code: code, CreatedAt: time.Now()}
	if _, err := s.collection.InsertOne(ctx, otp); err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// Consume verifies the code for the email and deletes it so it cannot be
// replayed. Returns ErrOTPNotFound for an unknown, already-used, or expired
// code.
func (s *OTPStore) Consume(ctx context.Context, email, code string) error {
	var otp models.OTP
	err := s.collection.FindOne(ctx, consumableOTPFilter(email, code, time.Now())).Decode(&otp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOTPNotFound
		}
		return fmt.Errorf("find otp: %w", err)
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": otp.ID}); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

// consumableOTPFilter matches an unexpired code. The TTL sweep runs in the
// background, so expiry is also enforced on read.
func consumableOTPFilter(email, code string, now time.Time) bson.M {
	return bson.M{
		"email":      strings.ToLower(email),
		"otp":        code,
		"created_at": bson.M{"$gte": now.Add(-otpTTL)},
	}
}
