package meditation

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	meditationmodel "github.com/tometh/soulvoice/internal/model/meditation"
)

type fakeScripter struct {
	script string
	phases []string

	lastPrompt  meditationmodel.Prompt
	lastEmotion string
}

func (f *fakeScripter) GenerateScript(_ context.Context, prompt meditationmodel.Prompt, emotion string) string {
	f.lastPrompt = prompt
	f.lastEmotion = emotion
	return f.script
}

func (f *fakeScripter) PhaseScripts(prompt meditationmodel.Prompt) []string {
	f.lastPrompt = prompt
	return f.phases
}

func newTestRouter(svc Scripter) http.Handler {
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func TestHandleScriptPassesPromptAndEmotion(t *testing.T) {
	svc := &fakeScripter{script: "请闭上眼睛"}
	router := newTestRouter(svc)

	body := `{"type":"sleep","scene":"海边","duration":10,"emotion":"焦虑"}`
	req := httptest.NewRequest(http.MethodPost, "/meditation/script", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["script"] != "请闭上眼睛" {
		t.Fatalf("unexpected script: %q", result["script"])
	}
	if svc.lastPrompt.Type != "sleep" || svc.lastPrompt.Scene != "海边" || svc.lastPrompt.Duration != 10 {
		t.Fatalf("prompt not forwarded: %+v", svc.lastPrompt)
	}
	if svc.lastEmotion != "焦虑" {
		t.Fatalf("emotion not forwarded: %q", svc.lastEmotion)
	}
}

func TestHandleScriptRequiresType(t *testing.T) {
	router := newTestRouter(&fakeScripter{})

	req := httptest.NewRequest(http.MethodPost, "/meditation/script", strings.NewReader(`{"scene":"森林"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandlePhasesReturnsOrderedList(t *testing.T) {
	svc := &fakeScripter{phases: []string{"开场", "正文", "收尾"}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/meditation/phases", strings.NewReader(`{"type":"relax"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var result map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	phases := result["phases"]
	if len(phases) != 3 || phases[0] != "开场" || phases[2] != "收尾" {
		t.Fatalf("unexpected phases: %v", phases)
	}
}

func TestHandleStreamSendsPhaseEvents(t *testing.T) {
	svc := &fakeScripter{phases: []string{"第一段"}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/meditation/stream?type=focus&scene=山谷", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	var events []string
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			events = append(events, strings.TrimPrefix(line, "event: "))
		}
	}
	if len(events) != 2 || events[0] != "phase" || events[1] != "done" {
		t.Fatalf("unexpected event sequence: %v", events)
	}
	if svc.lastPrompt.Type != "focus" || svc.lastPrompt.Scene != "山谷" {
		t.Fatalf("prompt not forwarded: %+v", svc.lastPrompt)
	}
}

func TestHandleStreamRequiresType(t *testing.T) {
	router := newTestRouter(&fakeScripter{})

	req := httptest.NewRequest(http.MethodGet, "/meditation/stream", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
