// Package enrolled joins enrollments to their course and (optional)
// certificate in one aggregation, for "my enrollments", "my certificates",
// and classroom member statistics.
package enrolled

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// Row is one enrollment with its course and certificate joined. Certificate
// is nil when none has been uploaded. Enrollments whose course no longer
// resolves are dropped by the $unwind.
type Row struct {
	models.Enrollment `bson:",inline"`
	Course            models.Course       `bson:"course"`
	Certificate       *models.Certificate `bson:"certificate"`
}

// ListForUser returns the user's enrollments joined with course and
// certificate, most recently started first.
func ListForUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]Row, error) {
	return run(ctx, db, bson.M{"user_id": userID})
}

// ListForUsers returns joined rows for every user in the set, used by the
// classroom aggregation to compute per-member statistics in one query.
func ListForUsers(ctx context.Context, db *mongo.Database, userIDs []primitive.ObjectID) ([]Row, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return run(ctx, db, bson.M{"user_id": bson.M{"$in": userIDs}})
}

func run(ctx context.Context, db *mongo.Database, match bson.M) ([]Row, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "course_id",
			"foreignField": "_id",
			"as":           "course",
		}}},
		bson.D{{Key: "$unwind", Value: "$course"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "certificates",
			"localField":   "_id",
			"foreignField": "enrollment_id",
			"as":           "certificate",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"certificate": bson.M{"$arrayElemAt": bson.A{"$certificate", 0}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "started_at", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := db.Collection("enrollments").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Row
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
