package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesizeReturnsAudioPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("text"); got != "晚安" {
			t.Errorf("unexpected text param: %q", got)
		}
		if got := r.URL.Query().Get("ref_audio_path"); got != "t1" {
			t.Errorf("unexpected ref audio: %q", got)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte("RIFF....WAVE"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, RefAudio: "t1", Enabled: true})
	audio, err := client.Synthesize(context.Background(), "晚安", "")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if audio.ContentType != "audio/wav" || len(audio.Data) == 0 {
		t.Fatalf("unexpected audio payload: %+v", audio)
	}
}

func TestSynthesizeRejectsNonAudioResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not audio</html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Enabled: true})
	if _, err := client.Synthesize(context.Background(), "晚安", ""); err == nil {
		t.Fatal("expected error for non-audio response")
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:9", Enabled: true})
	if _, err := client.Synthesize(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty text")
	}
}
