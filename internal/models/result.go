package models

type ScoreRequest struct {
	ResumeText       string `json:"resume_text"`
	JobDescription   string `json:"job_description"`
	MinKeywordLength int    `json:"min_keyword_length,omitempty"`
	MaxKeywords      int    `json:"max_keywords,omitempty"`
}

type SummaryRequest struct {
	Profile        CandidateProfile `json:"profile"`
	JobDescription string           `json:"job_description,omitempty"`
	TargetTitle    string           `json:"target_title,omitempty"`
}

type CoverLetterRequest struct {
	Input          CoverLetterInput `json:"input"`
	JobDescription string           `json:"job_description,omitempty"`
	Tone           string           `json:"tone,omitempty"`
}

type ExportRequest struct {
	Resume   ResumeData `json:"resume"`
	Template string     `json:"template"`
}

type GenerateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type GenerationResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *GenerationData `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

type GenerationData struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type ExportResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Template string `json:"template"`
	Download string `json:"download"`
}
