package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"brew-commerce/models"
)

// UserStore spans both identity partitions: password-based accounts in
// "users" and federated accounts in "googleusers". Lookups that take a user
// id check the federated partition first, password partition as fallback,
// so callers see one logical user.
type UserStore struct {
	users       *mongo.Collection
	googleUsers *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{
		users:       db.Collection("users"),
		googleUsers: db.Collection("googleusers"),
	}
}

// Resolve returns the common identity shape for a user id from either
// partition, or ErrUserNotFound when neither resolves.
func (s *UserStore) Resolve(ctx context.Context, userID string) (*models.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var gu models.GoogleUser
	err = s.googleUsers.FindOne(ctx, bson.M{"_id": oid}).Decode(&gu)
	if err == nil {
		return &models.Identity{ID: userID, Username: gu.Username, Email: gu.Email, Phone: gu.Phone}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resolve federated user: %w", err)
	}

	var u models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return &models.Identity{ID: userID, Username: u.Username, Email: u.Email, Phone: u.Phone}, nil
}

// FindByEmail looks up a password-based account by lowercased email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Insert creates a password-based account.
func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// UpdatePassword replaces the stored password hash for an email.
func (s *UserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile applies the given profile fields to whichever partition
// holds the user, federated first.
func (s *UserStore) UpdateProfile(ctx context.Context, userID string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	update := bson.M{"$set": fields}

	result, err := s.googleUsers.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update federated profile: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	result, err = s.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateStatus sets the account status ("active"/"inactive") on the
// password partition.
func (s *UserStore) UpdateStatus(ctx context.Context, userID, status string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountUsers counts password-based accounts. Federated accounts are not
// included so the dashboard number stays comparable with its history.
func (s *UserStore) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// ListUsers returns all password-based accounts.
func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// ListGoogleUsers returns all federated accounts.
func (s *UserStore) ListGoogleUsers(ctx context.Context) ([]models.GoogleUser, error) {
	cursor, err := s.googleUsers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list federated users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.GoogleUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode federated users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a password-based account by id.
func (s *UserStore) DeleteUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
