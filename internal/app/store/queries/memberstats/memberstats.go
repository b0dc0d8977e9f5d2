// Package memberstats computes per-member learning statistics for
// classroom detail views.
package memberstats

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/coursehub/internal/app/store/queries/enrolled"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// CertificateInfo is a member's certificate with the course title joined in.
type CertificateInfo struct {
	ID          primitive.ObjectID
	Title       string
	URL         string
	CourseTitle string
	IssuedOn    *time.Time
}

// Stats summarizes one member's enrollments.
type Stats struct {
	Total           int
	Completed       int
	InProgress      int
	AverageProgress int
	Certificates    []CertificateInfo
}

// ForUsers returns statistics keyed by user id. Users with no enrollments
// get a zero Stats value, so every requested member appears in the map.
func ForUsers(ctx context.Context, db *mongo.Database, userIDs []primitive.ObjectID) (map[primitive.ObjectID]Stats, error) {
	out := make(map[primitive.ObjectID]Stats, len(userIDs))
	for _, id := range userIDs {
		out[id] = Stats{Certificates: []CertificateInfo{}}
	}
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := enrolled.ListForUsers(ctx, db, userIDs)
	if err != nil {
		return nil, err
	}

	sums := make(map[primitive.ObjectID]float64, len(userIDs))
	for _, row := range rows {
		s := out[row.UserID]
		s.Total++
		switch row.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		}
		sums[row.UserID] += row.Progress
		if row.Certificate != nil {
			s.Certificates = append(s.Certificates, CertificateInfo{
				ID:          row.Certificate.ID,
				Title:       row.Certificate.Title,
				URL:         row.Certificate.URL,
				CourseTitle: row.Course.Title,
				IssuedOn:    row.Certificate.IssuedOn,
			})
		}
		out[row.UserID] = s
	}

	for id, s := range out {
		if s.Total > 0 {
			s.AverageProgress = int(math.Round(sums[id] / float64(s.Total)))
			out[id] = s
		}
	}
	return out, nil
}
