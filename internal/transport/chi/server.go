package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/coastwise/strata-advisor/internal/domain"
	"github.com/coastwise/strata-advisor/internal/pdftext"
	answeruc "github.com/coastwise/strata-advisor/internal/usecase/answer"
	healthuc "github.com/coastwise/strata-advisor/internal/usecase/health"
	ingestuc "github.com/coastwise/strata-advisor/internal/usecase/ingest"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the query and report-upload operations over HTTP.
type Server struct {
	answer        *answeruc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxUploadSize int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answer *answeruc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	maxUploadSize int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		answer:        answer,
		ingest:        ingest,
		health:        health,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidUpload, http.StatusBadRequest, CodeInvalidUpload),
		sentinelHandler(domain.ErrInvalidRole, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, CodeGenerationProviderError),
	}
	return s
}

// RegisterRoutes mounts the API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/query", s.Query)
	r.Post("/upload-report", s.UploadReport)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Question is required")
		return
	}

	history := make([]domain.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		msg, err := domain.NewHistoryMessage(m.Role, m.Content)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		history = append(history, msg)
	}

	answer, sources, err := s.answer.Answer(r.Context(), req.Question, history, req.ReportID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{Answer: answer, Sources: sources})
}

// UploadReport handles POST /upload-report. The uploaded PDF is extracted to
// text and ingested into the report pool; the returned report_id scopes later
// queries to this document.
func (s *Server) UploadReport(w http.ResponseWriter, r *http.Request) {
	if s.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Missing file field: "+err.Error())
		return
	}
	defer file.Close()

	if !allowedUploadType(header.Header.Get("Content-Type")) {
		writeError(w, http.StatusBadRequest, CodeInvalidUpload, "Only PDF files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Error reading uploaded file: "+err.Error())
		return
	}

	text, err := pdftext.Extract(content)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidUpload, "PDF appears to be empty or unreadable")
		return
	}

	reportID, err := s.ingest.IngestReport(r.Context(), header.Filename, text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{ReportID: reportID, Filename: header.Filename})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// allowedUploadType accepts PDFs; octet-stream covers clients that never set a
// real content type.
func allowedUploadType(contentType string) bool {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	switch strings.TrimSpace(mediaType) {
	case "application/pdf", "application/octet-stream", "":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the sentinel's message for known errors and a
// generic message otherwise. Provider error detail never reaches the caller;
// it is logged instead.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidUpload,
		domain.ErrInvalidRole,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
