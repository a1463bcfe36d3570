package models

// CandidateProfile is the structured input for summary drafting.
type CandidateProfile struct {
	FullName        string   `json:"full_name"`
	Title           string   `json:"title"`
	YearsExperience int      `json:"years_experience"`
	CoreSkills      []string `json:"core_skills"`
	Industries      []string `json:"industries,omitempty"`
	Achievements    []string `json:"achievements,omitempty"`
	Tools           []string `json:"tools,omitempty"`
	Location        string   `json:"location,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Links           []string `json:"links,omitempty"`
}

// CoverLetterInput is the structured input for cover letter drafting.
type CoverLetterInput struct {
	FullName          string   `json:"full_name"`
	TargetRole        string   `json:"target_role"`
	CompanyName       string   `json:"company_name"`
	YearsExperience   int      `json:"years_experience"`
	KeySkills         []string `json:"key_skills,omitempty"`
	KeyAchievements   []string `json:"key_achievements,omitempty"`
	Tools             []string `json:"tools,omitempty"`
	Motivation        string   `json:"motivation,omitempty"`
	Location          string   `json:"location,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	DateLine          string   `json:"date_line,omitempty"`
	HiringManagerName string   `json:"hiring_manager_name,omitempty"`
}

type ExperienceItem struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Location  string   `json:"location,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

type EducationItem struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
	Details     string `json:"details,omitempty"`
}

// ResumeData is the full structured resume handed to the DOCX renderer.
type ResumeData struct {
	FullName       string           `json:"full_name"`
	Headline       string           `json:"headline,omitempty"`
	Location       string           `json:"location,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Links          []string         `json:"links,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Experience     []ExperienceItem `json:"experience,omitempty"`
	Education      []EducationItem  `json:"education,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
	Projects       []string         `json:"projects,omitempty"`
}
