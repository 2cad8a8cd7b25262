// Package types provides type definitions for the resume document edited and rendered by the builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume is the structured resume document held by an editor and fed to the renderers.
type Resume struct {
	FullName     string        `json:"full_name"`
	Location     string        `json:"location"`
	PhoneNumber  string        `json:"phone_number"`
	Email        string        `json:"email"`
	LinkedInURL  string        `json:"linkedin_url"`
	GithubLink   string        `json:"github_link"`
	LeetcodeLink string        `json:"leetcode_link"`
	Summary      string        `json:"summary"`
	Education    []Education   `json:"education"`
	Experience   []Experience  `json:"experience"`
	Projects     []Project     `json:"projects"`
	Skills       []Skill       `json:"skills"`
	Certificates []Certificate `json:"certificates"`
}

// Education is a single degree entry
type Education struct {
	University string  `json:"university"`
	Location   string  `json:"location"`
	Degree     string  `json:"degree"`
	Date       string  `json:"date"`
	Courses    Bullets `json:"courses"`
}

// Experience is a single job entry
type Experience struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
	Description Bullets `json:"description"`
}

// Skill is a labelled skill line, e.g. "Languages: Go, Python"
type Skill struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Project is a single project entry
type Project struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	TechStack   string  `json:"tech_stack"`
	Link        string  `json:"link,omitempty"`
	Description Bullets `json:"description"`
}

// Certificate is a named certification with an optional link
type Certificate struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// Clone returns a deep copy of the resume.
func (r Resume) Clone() Resume {
	out := r
	out.Education = make([]Education, len(r.Education))
	for i, e := range r.Education {
		e.Courses = e.Courses.Clone()
		out.Education[i] = e
	}
	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Description = e.Description.Clone()
		out.Experience[i] = e
	}
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Description = p.Description.Clone()
		out.Projects[i] = p
	}
	out.Skills = append([]Skill{}, r.Skills...)
	out.Certificates = append([]Certificate{}, r.Certificates...)
	return out
}

// Len returns the number of entries stored for a section.
func (r *Resume) Len(id SectionID) int {
	switch id {
	case SectionEducation:
		return len(r.Education)
	case SectionExperience:
		return len(r.Experience)
	case SectionProjects:
		return len(r.Projects)
	case SectionSkills:
		return len(r.Skills)
	case SectionCertificates:
		return len(r.Certificates)
	default:
		return 0
	}
}

// HasContent reports whether a section has at least one entry and should be shown.
func (r *Resume) HasContent(id SectionID) bool {
	return r.Len(id) > 0
}
