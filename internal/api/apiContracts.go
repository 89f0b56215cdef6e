package api

import "time"

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"unsupported file type \".png\", allowed: .pdf, .xlsx, .xls, .docx, .doc, .csv"`
	TraceID string `json:"trace_id,omitempty" example:"6f1c2a9e-3d0b-4f57-9a63-1f0e7d2c4b88"`
}

type APIInfoResponse struct {
	Name    string `json:"name" example:"Financial Assistant"`
	Version string `json:"version" example:"0.1.0"`
	Status  string `json:"status" example:"operational"`
	Docs    string `json:"docs" example:"/docs"`
}

type HealthResponse struct {
	Status        string    `json:"status" example:"healthy"`
	Timestamp     time.Time `json:"timestamp"`
	LLMProvider   string    `json:"llm_provider" example:"groq"`
	LLMModel      string    `json:"llm_model" example:"llama-3.3-70b-versatile"`
	Version       string    `json:"version" example:"0.1.0"`
	UptimeSeconds int64     `json:"uptime_seconds" example:"3600"`
}

type DocumentResponse struct {
	Id           string    `json:"id"`
	OriginalName string    `json:"original_name" example:"aapl-20250628.pdf"`
	StoredName   string    `json:"stored_name" example:"20251114_155218_aapl-20250628.pdf"`
	Type         string    `json:"type" example:"PDF"`
	Extension    string    `json:"extension" example:".pdf"`
	ContentType  string    `json:"content_type" example:"application/pdf"`
	SizeBytes    int64     `json:"size_bytes" example:"482113"`
	Path         string    `json:"path" example:"uploads/raw/20251114_155218_aapl-20250628.pdf"`
	UploadedAt   time.Time `json:"uploaded_at"`
	SHA256       string    `json:"sha256,omitempty"`
}

type UploadResponse struct {
	Message  string           `json:"message" example:"File uploaded successfully"`
	Document DocumentResponse `json:"document"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total" example:"2"`
	ByType    map[string]int     `json:"by_type"`
}

type SummarizeResponse struct {
	Filename       string `json:"filename"`
	OriginalLength int    `json:"original_length"`
	Truncated      bool   `json:"truncated"`
	Summary        string `json:"summary"`
	SummaryHTML    string `json:"summary_html"`
	SummaryLength  int    `json:"summary_length"`
	ModelUsed      string `json:"model_used"`
	Company        string `json:"company,omitempty" example:"AAPL"`
	Year           int    `json:"year,omitempty" example:"2025"`
}

type CompareResponse struct {
	FirstFilename  string `json:"first_filename"`
	SecondFilename string `json:"second_filename"`
	Comparison     string `json:"comparison"`
	ComparisonHTML string `json:"comparison_html"`
	ModelUsed      string `json:"model_used"`
}

// requests---------------------

type SummarizeRequest struct {
	Filename string `json:"filename" validate:"required" example:"20251114_155218_aapl-20250628.pdf"`
}

type CompareRequest struct {
	FirstFilename  string `json:"first_filename" validate:"required"`
	SecondFilename string `json:"second_filename" validate:"required"`
}
