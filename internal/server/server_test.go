package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyscope/pdf-summarizer/constants"
	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/llm"
	"github.com/studyscope/pdf-summarizer/internal/pipeline"
	"github.com/studyscope/pdf-summarizer/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type extractorMock struct{}

func (extractorMock) ExtractText([]byte) (string, error) {
	return "COURSE OVERVIEW\nA course about Go.\n# Grading\nExams and projects.", nil
}

type completerMock struct{ fail bool }

func (m completerMock) Complete(_ context.Context, _ llm.Profile, prompt string) (string, error) {
	if m.fail {
		return "", common.ErrUpstreamCall
	}
	switch {
	case strings.Contains(prompt, "teaching assistant"):
		return `{"Summary": "A friendly course about Go."}`, nil
	case strings.Contains(prompt, "learning_objectives"):
		return `{"sections": ["Overview"], "learning_objectives": [], "competencies": [], "resources": []}`, nil
	case strings.Contains(prompt, "keywords"):
		return `[{"word": "golang", "score": 92}]`, nil
	default:
		return `{"2024-09-01": {"type": "milestone", "description": "Course start"}}`, nil
	}
}

func newTestRouter(completer llm.Completer, limits common.RateLimitConfig) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := ratelimit.NewGate(ratelimit.NewMemoryStore(), logger)
	proc := pipeline.NewProcessor(logger, extractorMock{}, completer, gate, limits)
	return New(logger, proc).Router()
}

func multipartUpload(t *testing.T, filename, sessionID string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", constants.PDFContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if sessionID != "" {
		_ = w.WriteField("session_id", sessionID)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

var fakePDF = []byte("%PDF-1.7\nfake syllabus body")

func doUpload(router *gin.Engine, path, filename, sessionID string, data []byte, t *testing.T) *httptest.ResponseRecorder {
	body, contentType := multipartUpload(t, filename, sessionID, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(completerMock{}, common.RateLimitConfig{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestUpload_FullResponse(t *testing.T) {
	router := newTestRouter(completerMock{}, common.RateLimitConfig{})

	rec := doUpload(router, "/upload", "syllabus.pdf", "s1", fakePDF, t)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /upload = %d, body %s", rec.Code, rec.Body)
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Analysis == nil || resp.Analysis.Summary.Summary != "A friendly course about Go." {
		t.Errorf("analysis = %+v", resp.Analysis)
	}
	for _, name := range []string{"structure", "keywords", "timeline"} {
		if _, ok := resp.Figures[name]; !ok {
			t.Errorf("missing figure %q", name)
		}
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	router := newTestRouter(completerMock{}, common.RateLimitConfig{})

	rec := doUpload(router, "/upload", "notes.txt", "s1", []byte("plain text"), t)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /upload = %d, want 400", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "UPLOAD_REJECTED" {
		t.Errorf("error code = %q", envelope.Error.Code)
	}
}

func TestUpload_RateLimited(t *testing.T) {
	limits := common.RateLimitConfig{MaxRequests: 1, Window: time.Hour}
	router := newTestRouter(completerMock{}, limits)

	if rec := doUpload(router, "/upload", "a.pdf", "s1", fakePDF, t); rec.Code != http.StatusOK {
		t.Fatalf("first upload = %d", rec.Code)
	}
	if rec := doUpload(router, "/upload", "a.pdf", "s1", fakePDF, t); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload = %d, want 429", rec.Code)
	}
	// other sessions are unaffected
	if rec := doUpload(router, "/upload", "a.pdf", "s2", fakePDF, t); rec.Code != http.StatusOK {
		t.Fatalf("other session upload = %d, want 200", rec.Code)
	}
}

func TestUpload_UpstreamFailure(t *testing.T) {
	router := newTestRouter(completerMock{fail: true}, common.RateLimitConfig{})
	if rec := doUpload(router, "/upload", "a.pdf", "s1", fakePDF, t); rec.Code != http.StatusBadGateway {
		t.Fatalf("POST /upload = %d, want 502", rec.Code)
	}
}

func TestExport_ReturnsWorkbook(t *testing.T) {
	router := newTestRouter(completerMock{}, common.RateLimitConfig{})

	rec := doUpload(router, "/export", "syllabus.pdf", "s1", fakePDF, t)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /export = %d, body %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "analysis.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
