package handler

import (
	"github.com/aicv/cv-service/internal/core/domain"
)

// Transport types owned by the API layer. These are intentionally separate
// from the domain types so the JSON contract is not coupled to internal
// changes.

type experiencePayload struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type educationPayload struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Year        string `json:"year"`
}

type profilePayload struct {
	Name             string              `json:"name"`
	ShortDescription string              `json:"short_description"`
	SoftSkills       string              `json:"soft_skills"`
	HardSkills       string              `json:"hard_skills"`
	Experience       []experiencePayload `json:"experience" validate:"dive"`
	Education        []educationPayload  `json:"education" validate:"dive"`
	Languages        string              `json:"languages"`
	Mail             string              `json:"mail" validate:"omitempty,email"`
	Phone            string              `json:"phone"`
	PhotoURL         string              `json:"photo_url,omitempty"`
}

type getProfileResponse struct {
	Profile  profilePayload `json:"profile"`
	Complete bool           `json:"complete"`
}

func (p profilePayload) toDomain() domain.Profile {
	experience := make([]domain.ExperienceEntry, 0, len(p.Experience))
	for _, e := range p.Experience {
		experience = append(experience, domain.ExperienceEntry{
			Company:     e.Company,
			Role:        e.Role,
			Duration:    e.Duration,
			Description: e.Description,
		})
	}
	education := make([]domain.EducationEntry, 0, len(p.Education))
	for _, e := range p.Education {
		education = append(education, domain.EducationEntry{
			Institution: e.Institution,
			Degree:      e.Degree,
			Year:        e.Year,
		})
	}
	return domain.Profile{
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		SoftSkills:       p.SoftSkills,
		HardSkills:       p.HardSkills,
		Experience:       experience,
		Education:        education,
		Languages:        p.Languages,
		Mail:             p.Mail,
		Phone:            p.Phone,
		PhotoURL:         p.PhotoURL,
	}
}

func profileToPayload(p domain.Profile) profilePayload {
	experience := make([]experiencePayload, 0, len(p.Experience))
	for _, e := range p.Experience {
		experience = append(experience, experiencePayload{
			Company:     e.Company,
			Role:        e.Role,
			Duration:    e.Duration,
			Description: e.Description,
		})
	}
	education := make([]educationPayload, 0, len(p.Education))
	for _, e := range p.Education {
		education = append(education, educationPayload{
			Institution: e.Institution,
			Degree:      e.Degree,
			Year:        e.Year,
		})
	}
	return profilePayload{
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		SoftSkills:       p.SoftSkills,
		HardSkills:       p.HardSkills,
		Experience:       experience,
		Education:        education,
		Languages:        p.Languages,
		Mail:             p.Mail,
		Phone:            p.Phone,
		PhotoURL:         p.PhotoURL,
	}
}
