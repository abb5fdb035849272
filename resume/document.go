// Package resume defines the structured career data consumed by the layout engine.
package resume

// Document is one person's resume as collected upstream. Slice order is rendering order.
type Document struct {
	Personal       Personal        `json:"personal"`
	Objective      string          `json:"careerObjective,omitempty"`
	Experience     []Experience    `json:"experience,omitempty" validate:"dive"`
	Education      []Education     `json:"education,omitempty" validate:"dive"`
	Skills         []Skill         `json:"skills,omitempty" validate:"dive"`
	Projects       []Project       `json:"projects,omitempty" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" validate:"dive"`
	Achievements   []Achievement   `json:"achievements,omitempty" validate:"dive"`
}

// Personal holds the header fields. Any of them may be empty.
type Personal struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedinHandle,omitempty"`
}

// Experience is a single position.
type Experience struct {
	Title    string `json:"title" validate:"required"`
	Company  string `json:"company" validate:"required"`
	Duration string `json:"duration" validate:"required"`
}

// Education is a single degree or course of study.
type Education struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        string `json:"year" validate:"required"`
}

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level,omitempty"`
}

// Project is a named project with a short description.
type Project struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Certification is a credential issued by some body.
type Certification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Year   string `json:"year,omitempty"`
}

// Achievement is an award or notable result.
type Achievement struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// IsEmpty reports whether the document carries no section content at all.
// Personal fields are not considered.
func (d *Document) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.Objective == "" &&
		len(d.Experience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills) == 0 &&
		len(d.Projects) == 0 &&
		len(d.Certifications) == 0 &&
		len(d.Achievements) == 0
}
