package certificatestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("certificates")}
}

// Upsert stores the certificate for an enrollment, replacing any prior
// record. The unique index on enrollment_id guarantees at most one
// certificate per enrollment survives.
func (s *Store) Upsert(ctx context.Context, enrollmentID primitive.ObjectID, title, url string, publicID *string) (*models.Certificate, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":      title,
			"url":        url,
			"public_id":  publicID,
			"issued_on":  now,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"enrollment_id": enrollmentID,
			"created_at":    now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cert models.Certificate
	err := s.c.FindOneAndUpdate(ctx, bson.M{"enrollment_id": enrollmentID}, update, opts).Decode(&cert)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// GetByEnrollment loads the certificate for an enrollment, if any.
func (s *Store) GetByEnrollment(ctx context.Context, enrollmentID primitive.ObjectID) (*models.Certificate, error) {
	var cert models.Certificate
	if err := s.c.FindOne(ctx, bson.M{"enrollment_id": enrollmentID}).Decode(&cert); err != nil {
		return nil, err
	}
	return &cert, nil
}
