// Package types provides the document model shared by the editor, the export
// renderers and the persistence layer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact header shared by both documents.
// All fields are free-form; none are validated.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// ProfessionalSummary is a single free-text block. Embedded line breaks are
// significant and preserved by every renderer.
type ProfessionalSummary struct {
	Content string `json:"content"`
}

// TechnicalSkills holds five free-text categories. A blank category is
// omitted from rendered output.
type TechnicalSkills struct {
	Languages      string `json:"languages"`
	Frameworks     string `json:"frameworks"`
	Tools          string `json:"tools"`
	Methodologies  string `json:"methodologies"`
	Certifications string `json:"certifications"`
}

// Experience is one employment entry. Each achievement becomes one bullet.
type Experience struct {
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Technologies string   `json:"technologies"`
	Achievements []string `json:"achievements"`
}

// Project is one portfolio entry. URL is optional.
type Project struct {
	Name         string   `json:"name"`
	Duration     string   `json:"duration"`
	Technologies string   `json:"technologies"`
	Description  []string `json:"description"`
	URL          string   `json:"url,omitempty"`
}

// Education is one degree entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

// ResumeDocument is the complete résumé. List order is display order.
type ResumeDocument struct {
	PersonalInfo        PersonalInfo        `json:"personalInfo"`
	ProfessionalSummary ProfessionalSummary `json:"professionalSummary"`
	TechnicalSkills     TechnicalSkills     `json:"technicalSkills"`
	Experience          []Experience        `json:"experience"`
	Projects            []Project           `json:"projects"`
	Education           []Education         `json:"education"`
}

// SkillCategory is one labelled skills row in fixed display order.
type SkillCategory struct {
	Label string
	Value string
}

// Categories returns the five skill categories in display order, including
// blank ones. Renderers decide what to omit.
func (s TechnicalSkills) Categories() []SkillCategory {
	return []SkillCategory{
		{Label: "Languages", Value: s.Languages},
		{Label: "Frameworks & Libraries", Value: s.Frameworks},
		{Label: "Tools & Platforms", Value: s.Tools},
		{Label: "Methodologies", Value: s.Methodologies},
		{Label: "Certifications", Value: s.Certifications},
	}
}

// Clone returns a deep copy of the résumé. Nil lists stay nil.
func (r ResumeDocument) Clone() ResumeDocument {
	out := r
	out.Experience = cloneExperience(r.Experience)
	out.Projects = cloneProjects(r.Projects)
	if r.Education != nil {
		out.Education = append([]Education{}, r.Education...)
	}
	return out
}

func cloneExperience(in []Experience) []Experience {
	if in == nil {
		return nil
	}
	out := make([]Experience, len(in))
	for i, e := range in {
		e.Achievements = cloneStrings(e.Achievements)
		out[i] = e
	}
	return out
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, p := range in {
		p.Description = cloneStrings(p.Description)
		out[i] = p
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
