package enrollments

import (
	"time"

	"github.com/dalemusser/coursehub/internal/app/store/queries/enrolled"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type enrollRequest struct {
	CourseID string `json:"courseId"`
}

type updateRequest struct {
	Progress *float64 `json:"progress"`
	Status   *string  `json:"status"`
}

// EnrollmentDTO is the public shape of an enrollment record.
type EnrollmentDTO struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"courseId"`
	Progress    float64    `json:"progress"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// CourseRef is the joined course summary on an enrollment row.
type CourseRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Provider  string `json:"provider"`
	Category  string `json:"category"`
	Level     string `json:"level"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CertificateRef is the joined certificate on an enrollment row.
type CertificateRef struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	IssuedOn *time.Time `json:"issuedOn"`
}

// EnrolledRowDTO is an enrollment with its course and certificate joined,
// as returned by the listing endpoint.
type EnrolledRowDTO struct {
	EnrollmentDTO
	Course      CourseRef       `json:"course"`
	Certificate *CertificateRef `json:"certificate"`
}

func toEnrollmentDTO(e models.Enrollment) EnrollmentDTO {
	return EnrollmentDTO{
		ID:          e.ID.Hex(),
		CourseID:    e.CourseID.Hex(),
		Progress:    e.Progress,
		Status:      e.Status,
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
	}
}

func toRowDTO(row enrolled.Row) EnrolledRowDTO {
	out := EnrolledRowDTO{
		EnrollmentDTO: toEnrollmentDTO(row.Enrollment),
		Course: CourseRef{
			ID:        row.Course.ID.Hex(),
			Title:     row.Course.Title,
			Provider:  row.Course.Provider,
			Category:  row.Course.Category,
			Level:     row.Course.Level,
			URL:       row.Course.URL,
			Thumbnail: row.Course.Thumbnail,
		},
	}
	if row.Certificate != nil {
		out.Certificate = &CertificateRef{
			ID:       row.Certificate.ID.Hex(),
			Title:    row.Certificate.Title,
			URL:      row.Certificate.URL,
			IssuedOn: row.Certificate.IssuedOn,
		}
	}
	return out
}
