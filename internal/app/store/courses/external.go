package coursestore

import "strings"

// ExternalCourse is one entry in the built-in catalog of courses hosted on
// outside platforms. External courses carry string ids, never enter the
// database, and cannot be enrolled in.
type ExternalCourse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Provider    string   `json:"provider"`
	Instructor  string   `json:"instructor"`
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Price       string   `json:"price"`
	Rating      float64  `json:"rating"`
	Students    int      `json:"students"`
	URL         string   `json:"url"`
	Skills      []string `json:"skills"`
	Certificate bool     `json:"certificate"`
}

// externalCatalog is a static snapshot of popular provider listings. A live
// integration would pull these from the provider APIs instead.
var externalCatalog = []ExternalCourse{
	{
		ID:          "coursera-ml-stanford",
		Title:       "Machine Learning",
		Provider:    "Coursera",
		Instructor:  "Andrew Ng",
		Category:    "Computer Science",
		Level:       "Intermediate",
		Description: "Learn about machine learning algorithms and their practical applications",
		Duration:    "11 weeks",
		Price:       "$49/month",
		Rating:      4.9,
		Students:    4200000,
		URL:         "https://www.coursera.org/learn/machine-learning",
		Skills:      []string{"Machine Learning", "Python", "Statistics", "Data Analysis"},
		Certificate: true,
	},
	{
		ID:          "udemy-web-dev-bootcamp",
		Title:       "The Complete Web Developer Bootcamp 2024",
		Provider:    "Udemy",
		Instructor:  "Colt Steele",
		Category:    "Web Development",
		Level:       "Beginner",
		Description: "Learn web development from scratch with HTML, CSS, JavaScript, Node.js, React, and more",
		Duration:    "63.5 hours",
		Price:       "$84.99",
		Rating:      4.7,
		Students:    893000,
		URL:         "https://www.udemy.com/course/the-complete-web-development-bootcamp/",
		Skills:      []string{"HTML", "CSS", "JavaScript", "React", "Node.js", "MongoDB"},
		Certificate: true,
	},
	{
		ID:          "coursera-data-science-johns-hopkins",
		Title:       "Data Science Specialization",
		Provider:    "Coursera",
		Instructor:  "Johns Hopkins University",
		Category:    "Data Science",
		Level:       "Intermediate",
		Description: "Master data science fundamentals and build a portfolio of projects",
		Duration:    "11 months",
		Price:       "$49/month",
		Rating:      4.6,
		Students:    650000,
		URL:         "https://www.coursera.org/specializations/jhu-data-science",
		Skills:      []string{"R", "Data Science", "Statistics", "Machine Learning", "Data Visualization"},
		Certificate: true,
	},
	{
		ID:          "udemy-python-complete",
		Title:       "Complete Python Developer in 2024: Zero to Mastery",
		Provider:    "Udemy",
		Instructor:  "Andrei Neagoie",
		Category:    "Programming",
		Level:       "Beginner",
		Description: "Learn Python programming from scratch and become a professional developer",
		Duration:    "30.5 hours",
		Price:       "$84.99",
		Rating:      4.6,
		Students:    456000,
		URL:         "https://www.udemy.com/course/complete-python-developer-zero-to-mastery/",
		Skills:      []string{"Python", "Web Development", "Machine Learning", "Data Science", "Automation"},
		Certificate: true,
	},
	{
		ID:          "coursera-google-it-support",
		Title:       "Google IT Support Professional Certificate",
		Provider:    "Coursera",
		Instructor:  "Google",
		Category:    "Information Technology",
		Level:       "Beginner",
		Description: "Prepare for a career in IT support with hands-on training",
		Duration:    "3-6 months",
		Price:       "$49/month",
		Rating:      4.7,
		Students:    820000,
		URL:         "https://www.coursera.org/professional-certificates/google-it-support",
		Skills:      []string{"IT Support", "Troubleshooting", "Customer Service", "Linux", "System Administration"},
		Certificate: true,
	},
	{
		ID:          "udemy-aws-certified-solutions-architect",
		Title:       "AWS Certified Solutions Architect Associate",
		Provider:    "Udemy",
		Instructor:  "Stephane Maarek",
		Category:    "Cloud Computing",
		Level:       "Intermediate",
		Description: "Pass the AWS Solutions Architect Associate certification exam",
		Duration:    "27 hours",
		Price:       "$94.99",
		Rating:      4.7,
		Students:    456000,
		URL:         "https://www.udemy.com/course/aws-certified-solutions-architect-associate-saa-c03/",
		Skills:      []string{"AWS", "Cloud Computing", "Architecture", "DevOps", "Security"},
		Certificate: true,
	},
}

// ExternalListParams are the optional filters for the external catalog.
// Provider and level match exactly, category and search by substring; all
// comparisons are case-insensitive.
type ExternalListParams struct {
	Search   string
	Provider string
	Category string
	Level    string
}

// ListExternal returns the external catalog entries matching the filters,
// in catalog order.
func ListExternal(p ExternalListParams) []ExternalCourse {
	out := make([]ExternalCourse, 0, len(externalCatalog))
	for _, c := range externalCatalog {
		if matchesExternal(c, p) {
			out = append(out, c)
		}
	}
	return out
}

func matchesExternal(c ExternalCourse, p ExternalListParams) bool {
	if p.Provider != "" && !strings.EqualFold(c.Provider, p.Provider) {
		return false
	}
	if p.Category != "" && !strings.Contains(strings.ToLower(c.Category), strings.ToLower(p.Category)) {
		return false
	}
	if p.Level != "" && !strings.EqualFold(c.Level, p.Level) {
		return false
	}
	if p.Search != "" && !matchesExternalSearch(c, strings.ToLower(p.Search)) {
		return false
	}
	return true
}

// matchesExternalSearch reports whether the lowercased term appears in the
// title, description, or any skill.
func matchesExternalSearch(c ExternalCourse, term string) bool {
	if strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Description), term) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

// CompareExternal returns the external courses whose ids are in the set.
// Unknown ids are skipped rather than rejected.
func CompareExternal(ids []string) []ExternalCourse {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := []ExternalCourse{}
	for _, c := range externalCatalog {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
