package domain

// ExperienceEntry is one position in the profile's work history.
type ExperienceEntry struct {
	Company     string `json:"company" bson:"company"`
	Role        string `json:"role" bson:"role"`
	Duration    string `json:"duration" bson:"duration"`
	Description string `json:"description" bson:"description"`
}

// EducationEntry is one degree in the profile's education history.
type EducationEntry struct {
	Institution string `json:"institution" bson:"institution"`
	Degree      string `json:"degree" bson:"degree"`
	Year        string `json:"year" bson:"year"`
}

// Profile is the free-form résumé data owned by a single account. It is
// mutated only through explicit user edits and is a read-only input to
// generation.
type Profile struct {
	Name             string            `json:"name" bson:"name"`
	ShortDescription string            `json:"short_description" bson:"short_description"`
	SoftSkills       string            `json:"soft_skills" bson:"soft_skills"`
	HardSkills       string            `json:"hard_skills" bson:"hard_skills"`
	Experience       []ExperienceEntry `json:"experience" bson:"experience"`
	Education        []EducationEntry  `json:"education" bson:"education"`
	Languages        string            `json:"languages" bson:"languages"`
	Mail             string            `json:"mail" bson:"mail"`
	Phone            string            `json:"phone" bson:"phone"`
	PhotoURL         string            `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
}

// IsComplete reports whether the profile carries enough substance to tailor a
// CV from: identity, a summary, both skills lists, and at least one
// experience and education entry.
func (p Profile) IsComplete() bool {
	return p.Name != "" &&
		p.ShortDescription != "" &&
		p.SoftSkills != "" &&
		p.HardSkills != "" &&
		len(p.Experience) > 0 &&
		len(p.Education) > 0
}

// IsZero reports whether the profile carries no data at all.
func (p Profile) IsZero() bool {
	return p.Name == "" &&
		p.ShortDescription == "" &&
		p.SoftSkills == "" &&
		p.HardSkills == "" &&
		len(p.Experience) == 0 &&
		len(p.Education) == 0 &&
		p.Languages == "" &&
		p.Mail == "" &&
		p.Phone == ""
}
