package courses

import "github.com/dalemusser/coursehub/internal/domain/models"

// CourseDTO is the public shape of a catalog entry.
type CourseDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Level       string `json:"level"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

func toCourseDTO(c models.Course) CourseDTO {
	return CourseDTO{
		ID:          c.ID.Hex(),
		Title:       c.Title,
		Provider:    c.Provider,
		Category:    c.Category,
		Description: c.Description,
		Level:       c.Level,
		URL:         c.URL,
		Thumbnail:   c.Thumbnail,
	}
}

func toCourseDTOs(list []models.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toCourseDTO(c))
	}
	return out
}
