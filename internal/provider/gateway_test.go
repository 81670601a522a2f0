package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGateway(url string, timeout time.Duration) *Gateway {
	return NewGateway(Config{
		BaseURL:         url,
		Token:           "test-token",
		ClassifierModel: "test/classifier",
		GeneratorModel:  "test/generator",
		Timeout:         timeout,
	})
}

func TestClassifyEmotionParsesNestedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		w.Write([]byte(`[[{"label":"sadness","score":0.91},{"label":"anger","score":0.05}]]`))
	}))
	defer srv.Close()

	labels, fail := newTestGateway(srv.URL, time.Second).ClassifyEmotion(context.Background(), "难过")
	if fail != nil {
		t.Fatalf("unexpected failure: %s", fail)
	}
	if len(labels) != 2 || labels[0].Label != "sadness" {
		t.Fatalf("unexpected labels: %+v", labels)
	}
}

func TestClassifyEmotionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, fail := newTestGateway(srv.URL, time.Second).ClassifyEmotion(context.Background(), "text")
	if fail == nil {
		t.Fatal("expected failure for non-2xx response")
	}
	if fail.Kind != FailureHTTP || fail.Status != http.StatusServiceUnavailable {
		t.Fatalf("unexpected failure: %s", fail)
	}
}

func TestClassifyEmotionSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	_, fail := newTestGateway(srv.URL, time.Second).ClassifyEmotion(context.Background(), "text")
	if fail == nil || fail.Kind != FailureSchema {
		t.Fatalf("expected schema failure, got %s", fail)
	}
}

func TestPostTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	_, fail := newTestGateway(srv.URL, 30*time.Millisecond).ClassifyEmotion(context.Background(), "text")
	if fail == nil || fail.Kind != FailureTimeout {
		t.Fatalf("expected timeout failure, got %s", fail)
	}
}

func TestPostNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关闭，触发连接错误

	_, fail := newTestGateway(srv.URL, time.Second).ClassifyEmotion(context.Background(), "text")
	if fail == nil {
		t.Fatal("expected failure for refused connection")
	}
	if fail.Kind != FailureNetwork && fail.Kind != FailureTimeout {
		t.Fatalf("expected network-class failure, got %s", fail)
	}
}

func TestGenerateTextParsesListPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"  宁静的海边，波浪轻拍沙滩。 "}]`))
	}))
	defer srv.Close()

	text, fail := newTestGateway(srv.URL, time.Second).GenerateText(context.Background(), "prompt", nil)
	if fail != nil {
		t.Fatalf("unexpected failure: %s", fail)
	}
	if text != "宁静的海边，波浪轻拍沙滩。" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{name: "bare object", content: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "prose around object", content: "好的，结果如下：\n{\"a\":1}\n希望有帮助", want: `{"a":1}`, ok: true},
		{name: "no object", content: "抱歉，我无法生成", ok: false},
	}

	for _, tc := range cases {
		raw, ok := ExtractJSONObject(tc.content)
		if ok != tc.ok {
			t.Errorf("%s: ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && string(raw) != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, raw, tc.want)
		}
	}
}
