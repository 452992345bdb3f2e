package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/coastwise/strata-advisor/internal/domain"
	answeruc "github.com/coastwise/strata-advisor/internal/usecase/answer"
	healthuc "github.com/coastwise/strata-advisor/internal/usecase/health"
	ingestuc "github.com/coastwise/strata-advisor/internal/usecase/ingest"
)

// --- Mocks ---

type mockRetriever struct {
	results []domain.ScoredDocument
	err     error
}

func (m *mockRetriever) Retrieve(_ context.Context, _, _ string) ([]domain.ScoredDocument, error) {
	return m.results, m.err
}

type mockCompleter struct {
	content string
	err     error
}

func (m *mockCompleter) Complete(_ context.Context, _ []domain.ChatMessage) (domain.CompletionResult, error) {
	if m.err != nil {
		return domain.CompletionResult{}, m.err
	}
	return domain.CompletionResult{Content: m.content}, nil
}

type mockAppender struct{}

func (m *mockAppender) Add(_ domain.Document, _ []float32) {}

type mockBatchEmbedder struct {
	err error
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	embeddings := make([][]float32, len(texts))
	for i := range embeddings {
		embeddings[i] = []float32{1, 0}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings}, nil
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck(_ context.Context) error { return m.err }

func newTestServer(retriever *mockRetriever, completer *mockCompleter, embedErr error) *Server {
	answerSvc := answeruc.New(retriever, completer)
	ingestSvc := ingestuc.New(&mockAppender{}, &mockBatchEmbedder{err: embedErr})
	healthSvc := healthuc.New(&mockHealthChecker{}, &mockHealthChecker{})
	return NewServer(answerSvc, ingestSvc, healthSvc, 1<<20, zap.NewNop())
}

func newTestRouter(s *Server) http.Handler {
	r := chirouter.NewRouter()
	s.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return errResp
}

// --- Query tests ---

func TestQuery_Success(t *testing.T) {
	retriever := &mockRetriever{results: []domain.ScoredDocument{
		{Document: domain.Document{ID: "doc1", Title: "Balcony Membranes", Text: "text"}},
	}}
	h := newTestRouter(newTestServer(retriever, &mockCompleter{content: "replace the membrane"}, nil))

	rr := postJSON(t, h, "/query", `{"question":"is the membrane done?"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp QueryResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "replace the membrane" {
		t.Errorf("answer: got %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "Balcony Membranes (id=doc1)" {
		t.Errorf("sources: got %v", resp.Sources)
	}
}

func TestQuery_WithHistoryAndReportID(t *testing.T) {
	retriever := &mockRetriever{}
	h := newTestRouter(newTestServer(retriever, &mockCompleter{content: "ok"}, nil))

	body := `{
		"question": "and the parkade?",
		"history": [
			{"role": "user", "content": "first question"},
			{"role": "assistant", "content": "first answer"}
		],
		"report_id": "rep-1"
	}`
	rr := postJSON(t, h, "/query", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
}

func TestQuery_EmptyQuestion_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		rr := postJSON(t, h, "/query", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: got %d, want 400", body, rr.Code)
		}
		if errResp := decodeError(t, rr); errResp.Code != CodeValidationFailed {
			t.Errorf("body %s: error code %s", body, errResp.Code)
		}
	}
}

func TestQuery_MalformedJSON_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	rr := postJSON(t, h, "/query", `{"question": `)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Code != CodeBadRequest {
		t.Errorf("error code: %s", errResp.Code)
	}
}

func TestQuery_InvalidHistoryRole_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	rr := postJSON(t, h, "/query", `{"question":"q","history":[{"role":"system","content":"x"}]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Code != CodeValidationFailed {
		t.Errorf("error code: %s", errResp.Code)
	}
}

func TestQuery_EmbeddingProviderError_502(t *testing.T) {
	retriever := &mockRetriever{err: domain.ErrEmbeddingProviderError}
	h := newTestRouter(newTestServer(retriever, &mockCompleter{}, nil))

	rr := postJSON(t, h, "/query", `{"question":"q"}`)
	if rr.Code != http.StatusBadGateway {
		t.Errorf("got %d, want 502", rr.Code)
	}
	errResp := decodeError(t, rr)
	if errResp.Code != CodeEmbeddingProviderError {
		t.Errorf("error code: %s", errResp.Code)
	}
	// Detail stays in the logs; the caller gets the safe sentinel message.
	if errResp.Message != domain.ErrEmbeddingProviderError.Error() {
		t.Errorf("message leaked detail: %q", errResp.Message)
	}
}

func TestQuery_GenerationProviderError_502(t *testing.T) {
	retriever := &mockRetriever{}
	completer := &mockCompleter{err: domain.ErrGenerationProviderError}
	h := newTestRouter(newTestServer(retriever, completer, nil))

	rr := postJSON(t, h, "/query", `{"question":"q"}`)
	if rr.Code != http.StatusBadGateway {
		t.Errorf("got %d, want 502", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Code != CodeGenerationProviderError {
		t.Errorf("error code: %s", errResp.Code)
	}
}

func TestQuery_UnknownError_500(t *testing.T) {
	retriever := &mockRetriever{err: errors.New("something odd")}
	h := newTestRouter(newTestServer(retriever, &mockCompleter{}, nil))

	rr := postJSON(t, h, "/query", `{"question":"q"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d, want 500", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Message != "internal error" {
		t.Errorf("message leaked detail: %q", errResp.Message)
	}
}

// --- Upload tests ---

func multipartBody(t *testing.T, fieldName, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadReport_MissingFileField_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	body, contentType := multipartBody(t, "attachment", "a.pdf", "application/pdf", []byte("x"))
	req := httptest.NewRequest("POST", "/upload-report", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
}

func TestUploadReport_WrongContentType_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	body, contentType := multipartBody(t, "file", "notes.txt", "text/plain", []byte("plain text"))
	req := httptest.NewRequest("POST", "/upload-report", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Code != CodeInvalidUpload {
		t.Errorf("error code: %s", errResp.Code)
	}
}

func TestUploadReport_UnparseablePDF_400(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	body, contentType := multipartBody(t, "file", "broken.pdf", "application/pdf", []byte("not a pdf at all"))
	req := httptest.NewRequest("POST", "/upload-report", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
	if errResp := decodeError(t, rr); errResp.Code != CodeInvalidUpload {
		t.Errorf("error code: %s", errResp.Code)
	}
}

// --- Health tests ---

func TestHealthCheck_OK(t *testing.T) {
	h := newTestRouter(newTestServer(&mockRetriever{}, &mockCompleter{}, nil))

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status: got %q", resp.Status)
	}
}

func TestHealthCheck_Degraded_503(t *testing.T) {
	answerSvc := answeruc.New(&mockRetriever{}, &mockCompleter{})
	ingestSvc := ingestuc.New(&mockAppender{}, &mockBatchEmbedder{})
	healthSvc := healthuc.New(&mockHealthChecker{err: errors.New("down")}, &mockHealthChecker{})
	s := NewServer(answerSvc, ingestSvc, healthSvc, 1<<20, zap.NewNop())
	h := newTestRouter(s)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("got %d, want 503", rr.Code)
	}
}
