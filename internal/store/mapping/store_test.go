package mapping

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tometh/soulvoice/internal/model/emotion"
)

func validCandidate() emotion.Mapping {
	return emotion.Mapping{
		EmotionMap: map[string]string{
			"happiness": "喜悦",
			"neutral":   "平静",
		},
		KeywordMap: map[string]string{
			"开心": "happiness",
		},
		SuggestionMap: map[string][]string{
			"happiness": {"继续保持好心情"},
		},
		SummaryMap: map[string]string{
			"happiness": "你很开心",
		},
	}
}

func TestGetReturnsDefaultInitially(t *testing.T) {
	store := NewStore(nil)
	got := store.Get()
	if !reflect.DeepEqual(got, emotion.Default()) {
		t.Fatal("fresh store should expose the built-in default mapping")
	}
}

func TestTrySetValidCandidate(t *testing.T) {
	store := NewStore(nil)
	candidate := validCandidate()

	if !store.TrySet(candidate) {
		t.Fatal("expected valid candidate to be accepted")
	}
	if got := store.Get(); !reflect.DeepEqual(got, candidate) {
		t.Fatalf("Get after TrySet returned a different mapping: %+v", got)
	}
}

func TestTrySetRejectsInvalidCandidates(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*emotion.Mapping)
	}{
		{
			name:   "missing table",
			mutate: func(m *emotion.Mapping) { m.KeywordMap = nil },
		},
		{
			name:   "empty emotion map",
			mutate: func(m *emotion.Mapping) { m.EmotionMap = map[string]string{} },
		},
		{
			name:   "dangling keyword reference",
			mutate: func(m *emotion.Mapping) { m.KeywordMap["难过"] = "sadness" },
		},
		{
			name:   "empty suggestion list",
			mutate: func(m *emotion.Mapping) { m.SuggestionMap["happiness"] = nil },
		},
		{
			name:   "empty summary",
			mutate: func(m *emotion.Mapping) { m.SummaryMap["happiness"] = "" },
		},
	}

	for _, tc := range cases {
		store := NewStore(nil)
		before := store.Get()

		candidate := validCandidate()
		tc.mutate(&candidate)

		if store.TrySet(candidate) {
			t.Errorf("%s: expected candidate to be rejected", tc.name)
		}
		if after := store.Get(); !reflect.DeepEqual(before, after) {
			t.Errorf("%s: store changed after rejected TrySet", tc.name)
		}
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	store := NewStore(nil)

	first := store.Get()
	first.EmotionMap["happiness"] = "tampered"

	if store.Get().EmotionMap["happiness"] == "tampered" {
		t.Fatal("mutating a Get result must not affect the store")
	}
}

func TestPersistedSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	persist := NewFileSnapshot(path)

	writer := NewStore(persist)
	candidate := validCandidate()
	if !writer.TrySet(candidate) {
		t.Fatal("TrySet failed")
	}

	// 新进程视角：从同一路径恢复。
	reader := NewStore(NewFileSnapshot(path))
	reader.Bootstrap()

	if got := reader.Get(); !reflect.DeepEqual(got, candidate) {
		t.Fatalf("bootstrap did not restore persisted mapping: %+v", got)
	}
}

func TestBootstrapKeepsDefaultWhenSnapshotMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	store := NewStore(NewFileSnapshot(path))
	store.Bootstrap()

	if !reflect.DeepEqual(store.Get(), emotion.Default()) {
		t.Fatal("store should keep the default mapping when no snapshot exists")
	}
}
