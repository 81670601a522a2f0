package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
)

type fakeAnalyzer struct {
	remote emotionmodel.Analysis
	local  emotionmodel.Analysis
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) emotionmodel.Analysis {
	return f.remote
}

func (f *fakeAnalyzer) AnalyzeLocal(_ string) emotionmodel.Analysis {
	return f.local
}

func newTestRouter(svc Analyzer) http.Handler {
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func TestHandleAnalyzeReturnsResult(t *testing.T) {
	svc := &fakeAnalyzer{
		remote: emotionmodel.Analysis{
			Emotion:     "喜悦",
			Confidence:  0.9,
			Suggestions: []string{"继续保持"},
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/emotion/analyze", strings.NewReader(`{"text":"今天很开心"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var result emotionmodel.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Emotion != "喜悦" || result.Confidence != 0.9 {
		t.Fatalf("unexpected analysis: %+v", result)
	}
}

func TestHandleAnalyzeRejectsEmptyText(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/emotion/analyze", strings.NewReader(`{"text":"   "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleAnalyzeRejectsBadBody(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/emotion/analyze", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
