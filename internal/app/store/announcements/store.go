// internal/app/store/announcements/store.go
package announcementstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/announcehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection holding announcements.
const CollectionName = "announcements"

// Store provides access to the announcements collection.
//
// Documents are keyed by a string _id (the hex of a fresh ObjectID).
// Documents written by older tooling may carry an ObjectID _id; lookups
// by id match either form.
type Store struct {
	c *mongo.Collection
}

// New creates a new announcements store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns every announcement, expired or not, in natural order.
func (s *Store) List(ctx context.Context) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find announcements: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Announcement{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}
	return out, nil
}

// Create inserts a document holding only the supplied fields and returns the
// stored announcement with its new id.
func (s *Store) Create(ctx context.Context, in models.AnnouncementInput) (models.Announcement, error) {
	id := primitive.NewObjectID().Hex()

	doc := append(bson.D{{Key: "_id", Value: id}}, in.SetDocument()...)
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}

	ann := models.Announcement{ID: id}
	in.Apply(&ann)
	return ann, nil
}

// Update merges the supplied fields into the document with the given id.
// A missing document is not an error. An input with no fields is a no-op.
func (s *Store) Update(ctx context.Context, id string, in models.AnnouncementInput) error {
	if in.Empty() {
		return nil
	}
	_, err := s.c.UpdateOne(ctx, idFilter(id), bson.D{{Key: "$set", Value: in.SetDocument()}})
	if err != nil {
		return fmt.Errorf("update announcement %s: %w", id, err)
	}
	return nil
}

// Delete removes the document with the given id. A missing document is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.c.DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored announcements.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return n, nil
}

// idFilter matches the string id, and the equivalent ObjectID when the id is
// valid hex.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}
