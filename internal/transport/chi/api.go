package chi

// Wire types for the HTTP API.

// HistoryMessage is one prior conversation turn supplied by the caller.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Question string           `json:"question"`
	History  []HistoryMessage `json:"history,omitempty"`
	ReportID string           `json:"report_id,omitempty"`
}

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// UploadResponse is the body of a successful POST /upload-report.
type UploadResponse struct {
	ReportID string `json:"report_id"`
	Filename string `json:"filename"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ErrorCode distinguishes client errors from server errors for API consumers.
type ErrorCode string

const (
	CodeBadRequest              ErrorCode = "bad_request"
	CodeUnauthorized            ErrorCode = "unauthorized"
	CodeValidationFailed        ErrorCode = "validation_failed"
	CodeInvalidUpload           ErrorCode = "invalid_upload"
	CodeEmbeddingProviderError  ErrorCode = "embedding_provider_error"
	CodeGenerationProviderError ErrorCode = "generation_provider_error"
	CodeInternalError           ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
