package meditation

import (
	"context"
	"strings"
	"testing"

	"github.com/tometh/soulvoice/internal/model/meditation"
	"github.com/tometh/soulvoice/internal/provider"
)

type stubGenerator struct {
	text string
	fail *provider.Failure
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(context.Context, string, string) (string, *provider.Failure) {
	return s.text, s.fail
}

func TestGenerateScriptUsesFirstHealthyProvider(t *testing.T) {
	broken := &stubGenerator{fail: &provider.Failure{Kind: provider.FailureTimeout, Detail: "deadline"}}
	healthy := &stubGenerator{text: "闭上眼睛，想象森林的清晨..."}
	svc := NewService([]provider.TextGenerator{broken, healthy})

	script := svc.GenerateScript(context.Background(), meditation.Prompt{Type: "sleep", Scene: "森林"}, "")
	if script != "闭上眼睛，想象森林的清晨..." {
		t.Fatalf("expected second provider output, got %q", script)
	}
}

func TestGenerateScriptTemplateFallback(t *testing.T) {
	broken := &stubGenerator{fail: &provider.Failure{Kind: provider.FailureNetwork, Detail: "refused"}}
	svc := NewService([]provider.TextGenerator{broken})

	scene := "宁静的海边，星光洒落海面"
	script := svc.GenerateScript(context.Background(), meditation.Prompt{Type: "sleep", Scene: scene}, "")

	if script == "" {
		t.Fatal("fallback script must not be empty")
	}
	if !strings.Contains(script, introByType["sleep"]) {
		t.Fatal("fallback script must contain the sleep intro fragment")
	}
	if !strings.Contains(script, scene) {
		t.Fatal("fallback script must interpolate the caller scene")
	}
	if !strings.Contains(script, "祝你好梦") {
		t.Fatal("sleep outro should close with the sleep blessing")
	}
}

func TestGenerateScriptUnknownTypeUsesDefaultIntro(t *testing.T) {
	svc := NewService(nil)
	script := svc.GenerateScript(context.Background(), meditation.Prompt{Type: "unknown", Scene: "山谷"}, "")

	if !strings.Contains(script, defaultIntro) {
		t.Fatal("unknown type should fall back to the default intro")
	}
}

func TestSleepMusicSkipsBreathingAndOutro(t *testing.T) {
	svc := NewService(nil)
	script := svc.GenerateScript(context.Background(), meditation.Prompt{Type: "sleep-music", Scene: "夜空"}, "")

	if strings.Contains(script, "让我们做几次深呼吸") {
		t.Fatal("sleep-music script must not contain the breathing guide")
	}
	if strings.Contains(script, "慢慢地，让意识回到当下") {
		t.Fatal("sleep-music script must not contain the outro")
	}
}

func TestPhaseScriptsAreOrderedAndComplete(t *testing.T) {
	svc := NewService(nil)
	scripts := svc.PhaseScripts(meditation.Prompt{Type: "anxiety", Scene: "竹林"})

	if len(scripts) != 3 {
		t.Fatalf("expected 3 phase scripts, got %d", len(scripts))
	}
	if !strings.Contains(scripts[0], introByType["anxiety"]) || !strings.Contains(scripts[0], "竹林") {
		t.Fatalf("opening phase incomplete: %q", scripts[0])
	}
	if !strings.Contains(scripts[1], bodyByType["anxiety"]) {
		t.Fatalf("development phase missing body: %q", scripts[1])
	}
	if !strings.Contains(scripts[2], "慢慢地，让意识回到当下") {
		t.Fatalf("closing phase missing outro: %q", scripts[2])
	}
}
