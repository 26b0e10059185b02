package model

// Request bodies of the HTTP API. Each has a schema under schemas/ that the
// handler checks before decoding.

type GenerateRequest struct {
	ResumeText string `json:"resumeText"`
	UserID     string `json:"userId,omitempty"`
	Language   string `json:"language,omitempty"`
}

type OpenRequest struct {
	HTML string `json:"html"`
}

type SelectRequest struct {
	Path  []string `json:"path"`
	Click bool     `json:"click,omitempty"`
}

type StyleRequest struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type ContentRequest struct {
	Content string `json:"content"`
}

type AttributeRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TemplateRequest struct {
	Kind string `json:"kind"`
}

type ThemeRequest struct {
	Name string `json:"name"`
}

type SaveRequest struct {
	UserID string `json:"userId"`
}
