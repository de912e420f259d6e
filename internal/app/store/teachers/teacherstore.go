// internal/app/store/teachers/teacherstore.go
package teacherstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/announcehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost for hashing teacher passwords.
const BcryptCost = 12

// ErrNotFound is returned when no teacher matches the username.
var ErrNotFound = errors.New("teacher not found")

// Store provides access to the teachers collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new teachers store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teachers")}
}

// EnsureIndexes creates the unique case-insensitive username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_ci", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username_ci"),
	})
	if err != nil {
		return fmt.Errorf("create teachers index: %w", err)
	}
	return nil
}

// GetByUsername looks a teacher up case-insensitively.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var t models.Teacher
	err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(strings.TrimSpace(username))}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return &t, nil
}

// Upsert creates the teacher or replaces its display name, role and password.
func (s *Store) Upsert(ctx context.Context, username, displayName, role, password string) (*models.Teacher, error) {
	username = strings.TrimSpace(username)
	if displayName == "" {
		displayName = username
	}
	if role == "" {
		role = models.RoleTeacher
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filter := bson.M{"username_ci": text.Fold(username)}
	update := bson.M{
		"$set": bson.M{
			"username":      username,
			"display_name":  displayName,
			"role":          role,
			"password_hash": hash,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var t models.Teacher
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&t); err != nil {
		return nil, fmt.Errorf("upsert teacher: %w", err)
	}
	return &t, nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
