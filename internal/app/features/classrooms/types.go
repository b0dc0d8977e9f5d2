package classrooms

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/coursehub/internal/app/store/queries/memberstats"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type joinRequest struct {
	Code string `json:"code"`
}

type recommendRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Notes string `json:"notes"`
}

// UserSummaryDTO identifies a user on classroom payloads. Name, email, and
// role are empty when the account no longer resolves.
type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ClassroomSummary is the list-view shape of a classroom. In list and join
// responses the join code is only present for the owner; the detail view
// includes it for every participant.
type ClassroomSummary struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Code                string    `json:"code,omitempty"`
	MemberCount         int       `json:"memberCount"`
	RecommendationCount int       `json:"recommendationCount"`
	CreatedAt           time.Time `json:"createdAt"`
}

// RecommendationDTO is an owner-curated link on a classroom.
type RecommendationDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy *UserSummaryDTO `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MemberCertificateDTO is a member's certificate with its course title.
type MemberCertificateDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	CourseTitle string     `json:"courseTitle"`
	IssuedOn    *time.Time `json:"issuedOn"`
}

// MemberStatsDTO summarizes one member's enrollments.
type MemberStatsDTO struct {
	Total            int                    `json:"total"`
	Completed        int                    `json:"completed"`
	InProgress       int                    `json:"inProgress"`
	AverageProgress  int                    `json:"averageProgress"`
	CertificateCount int                    `json:"certificateCount"`
	Certificates     []MemberCertificateDTO `json:"certificates"`
}

// MemberDTO is a classroom member with their progress statistics.
type MemberDTO struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Role  string         `json:"role"`
	Stats MemberStatsDTO `json:"stats"`
}

// ClassroomDetail is the full classroom view for participants. CanManage
// is true for the owner.
type ClassroomDetail struct {
	ClassroomSummary
	Owner           *UserSummaryDTO     `json:"owner"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	Members         []MemberDTO         `json:"members"`
	CanManage       bool                `json:"canManage"`
}

func toSummary(c *models.Classroom, includeCode bool) ClassroomSummary {
	s := ClassroomSummary{
		ID:                  c.ID.Hex(),
		Name:                c.Name,
		Description:         c.Description,
		MemberCount:         len(c.MemberIDs),
		RecommendationCount: len(c.Recommendations),
		CreatedAt:           c.CreatedAt,
	}
	if includeCode {
		s.Code = c.Code
	}
	return s
}

// userSummary builds a summary from the resolved user map, falling back to
// an id-only summary for accounts that no longer exist.
func userSummary(id primitive.ObjectID, byID map[primitive.ObjectID]models.User) *UserSummaryDTO {
	s := &UserSummaryDTO{ID: id.Hex()}
	if u, ok := byID[id]; ok {
		s.Name = u.Name
		s.Email = u.Email
		s.Role = u.Role
	}
	return s
}

func toRecommendationDTOs(recs []models.Recommendation, byID map[primitive.ObjectID]models.User) []RecommendationDTO {
	out := make([]RecommendationDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationDTO{
			ID:        rec.ID.Hex(),
			Title:     rec.Title,
			URL:       rec.URL,
			Notes:     rec.Notes,
			CreatedBy: userSummary(rec.CreatedBy, byID),
			CreatedAt: rec.CreatedAt,
		})
	}
	return out
}

func toMemberStatsDTO(s memberstats.Stats) MemberStatsDTO {
	certs := make([]MemberCertificateDTO, 0, len(s.Certificates))
	for _, c := range s.Certificates {
		certs = append(certs, MemberCertificateDTO{
			ID:          c.ID.Hex(),
			Title:       c.Title,
			URL:         c.URL,
			CourseTitle: c.CourseTitle,
			IssuedOn:    c.IssuedOn,
		})
	}
	return MemberStatsDTO{
		Total:            s.Total,
		Completed:        s.Completed,
		InProgress:       s.InProgress,
		AverageProgress:  s.AverageProgress,
		CertificateCount: len(certs),
		Certificates:     certs,
	}
}
