package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLegacyAnnouncement inserts an announcement whose _id is an
// ObjectID, as older tooling wrote them. It returns the id.
func (f *Fixtures) CreateLegacyAnnouncement(ctx context.Context, message string, expiration time.Time) primitive.ObjectID {
	f.t.Helper()
	oid := primitive.NewObjectID()
	_, err := f.db.Collection("announcements").InsertOne(ctx, bson.M{
		"_id":             oid,
		"message":         message,
		"expiration_date": expiration,
	})
	if err != nil {
		f.t.Fatalf("CreateLegacyAnnouncement: %v", err)
	}
	return oid
}

// CreateTeacher inserts a teacher with a low-cost bcrypt hash of password.
func (f *Fixtures) CreateTeacher(ctx context.Context, username, password string) primitive.ObjectID {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("CreateTeacher: hash: %v", err)
	}
	now := time.Now().UTC()
	id := primitive.NewObjectID()
	_, err = f.db.Collection("teachers").InsertOne(ctx, bson.M{
		"_id":           id,
		"username":      username,
		"username_ci":   text.Fold(username),
		"display_name":  username,
		"password_hash": string(hash),
		"role":          "teacher",
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		f.t.Fatalf("CreateTeacher: %v", err)
	}
	return id
}
