package editor

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// scalarField returns a pointer to one of the personal fields by its JSON name.
func scalarField(r *types.Resume, name string) *string {
	switch name {
	case "full_name":
		return &r.FullName
	case "location":
		return &r.Location
	case "phone_number":
		return &r.PhoneNumber
	case "email":
		return &r.Email
	case "linkedin_url":
		return &r.LinkedInURL
	case "github_link":
		return &r.GithubLink
	case "leetcode_link":
		return &r.LeetcodeLink
	case "summary":
		return &r.Summary
	default:
		return nil
	}
}

// ScalarFields lists the personal fields accepted by UpdateField.
var ScalarFields = []string{
	"full_name", "location", "phone_number", "email",
	"linkedin_url", "github_link", "leetcode_link", "summary",
}

// addItem appends the empty template for a section.
func addItem(r *types.Resume, section types.SectionID) {
	switch section {
	case types.SectionEducation:
		r.Education = append(r.Education, types.Education{Courses: types.Bullets{}})
	case types.SectionExperience:
		r.Experience = append(r.Experience, types.Experience{Description: types.Bullets{}})
	case types.SectionProjects:
		r.Projects = append(r.Projects, types.Project{Description: types.Bullets{}})
	case types.SectionSkills:
		r.Skills = append(r.Skills, types.Skill{})
	case types.SectionCertificates:
		r.Certificates = append(r.Certificates, types.Certificate{})
	}
}

// removeItem deletes the item at index. The caller has checked the bounds.
func removeItem(r *types.Resume, section types.SectionID, index int) {
	switch section {
	case types.SectionEducation:
		r.Education = append(r.Education[:index:index], r.Education[index+1:]...)
	case types.SectionExperience:
		r.Experience = append(r.Experience[:index:index], r.Experience[index+1:]...)
	case types.SectionProjects:
		r.Projects = append(r.Projects[:index:index], r.Projects[index+1:]...)
	case types.SectionSkills:
		r.Skills = append(r.Skills[:index:index], r.Skills[index+1:]...)
	case types.SectionCertificates:
		r.Certificates = append(r.Certificates[:index:index], r.Certificates[index+1:]...)
	}
}

// setItemField writes one key of one array item. List-valued keys take newline text.
func setItemField(r *types.Resume, section types.SectionID, index int, key, value string) bool {
	switch section {
	case types.SectionEducation:
		e := &r.Education[index]
		switch key {
		case "university":
			e.University = value
		case "location":
			e.Location = value
		case "degree":
			e.Degree = value
		case "date":
			e.Date = value
		case "courses":
			e.Courses = types.ParseBullets(value)
		default:
			return false
		}
	case types.SectionExperience:
		e := &r.Experience[index]
		switch key {
		case "title":
			e.Title = value
		case "company":
			e.Company = value
		case "location":
			e.Location = value
		case "date":
			e.Date = value
		case "description":
			e.Description = types.ParseBullets(value)
		default:
			return false
		}
	case types.SectionProjects:
		p := &r.Projects[index]
		switch key {
		case "title":
			p.Title = value
		case "date":
			p.Date = value
		case "tech_stack":
			p.TechStack = value
		case "link":
			p.Link = value
		case "description":
			p.Description = types.ParseBullets(value)
		default:
			return false
		}
	case types.SectionSkills:
		s := &r.Skills[index]
		switch key {
		case "name":
			s.Name = value
		case "value":
			s.Value = value
		default:
			return false
		}
	case types.SectionCertificates:
		c := &r.Certificates[index]
		switch key {
		case "name":
			c.Name = value
		case "link":
			c.Link = value
		default:
			return false
		}
	default:
		return false
	}
	return true
}
