package classroomstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classrooms")}
}

var (
	// ErrRecommendationNotFound is returned when removing a recommendation id
	// that does not exist on the classroom.
	ErrRecommendationNotFound = errors.New("recommendation not found")
)

// codeAttempts bounds the rejection-sampling loop; with 16.7M possible
// codes, hitting this limit means something is badly wrong.
const codeAttempts = 10

// newCode returns a random 6-character uppercase hex join code.
func newCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Create inserts a classroom with a freshly generated join code. Code
// collisions are rejected by the unique index and retried with a new code.
func (s *Store) Create(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*models.Classroom, error) {
	now := time.Now()
	room := models.Classroom{
		ID:          primitive.NewObjectID(),
		Name:        normalize.Name(name),
		Description: description,
		OwnerID:     ownerID,
		MemberIDs:   []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	room.NameCI = text.Fold(room.Name)

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := newCode()
		if err != nil {
			return nil, err
		}
		room.Code = code

		if _, err := s.c.InsertOne(ctx, room); err != nil {
			if wafflemongo.IsDup(err) {
				continue
			}
			return nil, err
		}
		return &room, nil
	}
	return nil, fmt.Errorf("could not generate a unique classroom code after %d attempts", codeAttempts)
}

// GetByID loads a classroom. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Classroom, error) {
	var room models.Classroom
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByCode looks up a classroom by join code, normalizing case and
// whitespace first.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Classroom, error) {
	var room models.Classroom
	if err := s.c.FindOne(ctx, bson.M{"code": normalize.Code(code)}).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListOwned returns classrooms owned by the user, newest first.
func (s *Store) ListOwned(ctx context.Context, ownerID primitive.ObjectID) ([]models.Classroom, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID})
}

// ListJoined returns classrooms the user is a member of, excluding any
// they also own.
func (s *Store) ListJoined(ctx context.Context, userID primitive.ObjectID) ([]models.Classroom, error) {
	return s.list(ctx, bson.M{
		"member_ids": userID,
		"owner_id":   bson.M{"$ne": userID},
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Classroom, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rooms := []models.Classroom{}
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// AddMember appends the user to the member set. $addToSet keeps a repeat
// join from duplicating the entry.
func (s *Store) AddMember(ctx context.Context, roomID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$addToSet": bson.M{"member_ids": userID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	return err
}

// AddRecommendation appends an owner-curated link to the classroom.
func (s *Store) AddRecommendation(ctx context.Context, roomID primitive.ObjectID, rec models.Recommendation) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$push": bson.M{"recommendations": rec},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveRecommendation pulls a recommendation by id. A matched classroom
// with nothing modified means the recommendation id did not exist. The
// update deliberately omits updated_at so ModifiedCount reflects the pull
// alone.
func (s *Store) RemoveRecommendation(ctx context.Context, roomID, recID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{
			"$pull": bson.M{"recommendations": bson.M{"_id": recID}},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	if res.ModifiedCount == 0 {
		return ErrRecommendationNotFound
	}
	return nil
}
