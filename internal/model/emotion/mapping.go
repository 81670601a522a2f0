package emotion

import (
	"fmt"
	"sort"
)

// Canonical 表示一个情绪的规范英文标识，与展示语言无关。
type Canonical string

const (
	Happiness Canonical = "happiness"
	Sadness   Canonical = "sadness"
	Anger     Canonical = "anger"
	Fear      Canonical = "fear"
	Surprise  Canonical = "surprise"
	Neutral   Canonical = "neutral"
	Disgust   Canonical = "disgust"
	Anxiety   Canonical = "anxiety"
)

// CanonicalOrder 是情绪词表的固定顺序，得分并列时取排位靠前者。
var CanonicalOrder = []Canonical{
	Happiness, Sadness, Anger, Fear, Surprise, Neutral, Disgust, Anxiety,
}

// Mapping 聚合情绪分类与内容生成所依赖的四张查找表。
// 它要么是构建期内置的默认版本，要么是一份通过完整校验的刷新版本，
// 不存在部分合并的中间状态。
type Mapping struct {
	EmotionMap    map[string]string   `json:"emotionMap"`
	KeywordMap    map[string]string   `json:"keywordMap"`
	SuggestionMap map[string][]string `json:"suggestionMap"`
	SummaryMap    map[string]string   `json:"emotionSummaryMap"`
}

// Validate 校验映射的完整性，任何一条规则不满足都会整体拒绝。
func (m Mapping) Validate() error {
	if m.EmotionMap == nil || m.KeywordMap == nil || m.SuggestionMap == nil || m.SummaryMap == nil {
		return fmt.Errorf("mapping is missing one of the four tables")
	}
	if len(m.EmotionMap) == 0 {
		return fmt.Errorf("emotionMap must not be empty")
	}
	for id, name := range m.EmotionMap {
		if id == "" || name == "" {
			return fmt.Errorf("emotionMap contains empty id or display name")
		}
	}
	for keyword, id := range m.KeywordMap {
		if keyword == "" {
			return fmt.Errorf("keywordMap contains an empty keyword")
		}
		if _, ok := m.EmotionMap[id]; !ok {
			return fmt.Errorf("keyword %q references unknown emotion %q", keyword, id)
		}
	}
	for id, suggestions := range m.SuggestionMap {
		if _, ok := m.EmotionMap[id]; !ok {
			return fmt.Errorf("suggestionMap key %q is not a known emotion", id)
		}
		if len(suggestions) == 0 {
			return fmt.Errorf("suggestionMap for %q must not be empty", id)
		}
		for _, s := range suggestions {
			if s == "" {
				return fmt.Errorf("suggestionMap for %q contains an empty entry", id)
			}
		}
	}
	for id, summary := range m.SummaryMap {
		if _, ok := m.EmotionMap[id]; !ok {
			return fmt.Errorf("emotionSummaryMap key %q is not a known emotion", id)
		}
		if summary == "" {
			return fmt.Errorf("emotionSummaryMap for %q is empty", id)
		}
	}
	return nil
}

// Clone 返回映射的深拷贝，避免调用方修改到共享快照。
func (m Mapping) Clone() Mapping {
	out := Mapping{
		EmotionMap:    make(map[string]string, len(m.EmotionMap)),
		KeywordMap:    make(map[string]string, len(m.KeywordMap)),
		SuggestionMap: make(map[string][]string, len(m.SuggestionMap)),
		SummaryMap:    make(map[string]string, len(m.SummaryMap)),
	}
	for k, v := range m.EmotionMap {
		out.EmotionMap[k] = v
	}
	for k, v := range m.KeywordMap {
		out.KeywordMap[k] = v
	}
	for k, v := range m.SuggestionMap {
		out.SuggestionMap[k] = append([]string(nil), v...)
	}
	for k, v := range m.SummaryMap {
		out.SummaryMap[k] = v
	}
	return out
}

// Vocabulary 返回 emotionMap 的键按固定词表顺序排列的切片，
// 词表之外的键（刷新引入的新情绪）按字典序附加在末尾。
func (m Mapping) Vocabulary() []string {
	seen := make(map[string]bool, len(m.EmotionMap))
	ordered := make([]string, 0, len(m.EmotionMap))
	for _, id := range CanonicalOrder {
		if _, ok := m.EmotionMap[string(id)]; ok {
			ordered = append(ordered, string(id))
			seen[string(id)] = true
		}
	}
	extra := make([]string, 0)
	for id := range m.EmotionMap {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}
