package coursestore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

//go:embed courses.json
var seedData []byte

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// EnsureSeeded bulk-inserts the embedded catalog when the collection is
// empty. Idempotent; called once from the startup hook.
func (s *Store) EnsureSeeded(ctx context.Context, logger *zap.Logger) error {
	count, err := s.c.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return nil
	}

	var seeds []models.Course
	if err := json.Unmarshal(seedData, &seeds); err != nil {
		return fmt.Errorf("parse embedded course data: %w", err)
	}

	now := time.Now()
	docs := make([]any, 0, len(seeds))
	for _, course := range seeds {
		course.ID = primitive.NewObjectID()
		course.TitleCI = text.Fold(course.Title)
		course.CreatedAt = now
		course.UpdatedAt = now
		docs = append(docs, course)
	}

	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert course seed: %w", err)
	}

	logger.Info("course catalog seeded", zap.Int("count", len(docs)))
	return nil
}

// ListParams are the optional catalog filters.
type ListParams struct {
	Search   string
	Provider string
	Category string
}

// List returns courses matching the filters, ordered by title ascending.
// Search is a case-insensitive substring match on title or description.
func (s *Store) List(ctx context.Context, p ListParams) ([]models.Course, error) {
	filter := bson.M{}
	if p.Provider != "" {
		filter["provider"] = p.Provider
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(p.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByID loads a course by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CompareParams select the courses for a side-by-side comparison.
type CompareParams struct {
	IDs      []primitive.ObjectID
	Provider string
	Category string
	Title    string
}

// Compare returns the courses in the id set, narrowed by the optional
// facets. Callers skip unparseable ids before building the params.
func (s *Store) Compare(ctx context.Context, p CompareParams) ([]models.Course, error) {
	filter := bson.M{}
	if len(p.IDs) > 0 {
		filter["_id"] = bson.M{"$in": p.IDs}
	}
	if p.Provider != "" {
		filter["provider"] = p.Provider
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.Title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(p.Title), Options: "i"}
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
