package certificates

import (
	"time"

	"github.com/dalemusser/coursehub/internal/domain/models"
)

// CertificateDTO is the public shape of a certificate record.
type CertificateDTO struct {
	ID           string     `json:"id"`
	EnrollmentID string     `json:"enrollmentId"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	PublicID     *string    `json:"publicId,omitempty"`
	IssuedOn     *time.Time `json:"issuedOn"`
}

// OwnedCertificateDTO adds the course title for the listing endpoint.
type OwnedCertificateDTO struct {
	CertificateDTO
	CourseTitle string `json:"courseTitle"`
}

func toCertificateDTO(c models.Certificate) CertificateDTO {
	return CertificateDTO{
		ID:           c.ID.Hex(),
		EnrollmentID: c.EnrollmentID.Hex(),
		Title:        c.Title,
		URL:          c.URL,
		PublicID:     c.PublicID,
		IssuedOn:     c.IssuedOn,
	}
}
