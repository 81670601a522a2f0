package emotion

import (
	"strings"

	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
)

// modifierGroup 是一组共享同一系数的强度修饰词。
type modifierGroup struct {
	phrases []string
	factor  float64
}

// 修饰词按固定优先级匹配：否定词、增强词、减弱词。
// 同一关键词出现时只取第一个命中的修饰词，保证结果可复现。
// 该表与默认映射同版本维护，仅供本地分类器使用。
var modifierGroups = []modifierGroup{
	{phrases: []string{"不", "没有", "毫无"}, factor: -1},
	{phrases: []string{"非常", "特别", "超级", "极度"}, factor: 1.5},
	{phrases: []string{"有点", "稍微", "些许", "不太"}, factor: 0.7},
}

const (
	baseConfidence     = 0.6
	confidencePerScore = 0.2

	strongIntensityRemark = "这种强烈的感受需要被温柔对待，让我们慢慢来"
	subtleIntensityRemark = "这种轻微的感受也值得被关注，让我们一起来理解它"
)

type tally struct {
	count     int
	intensity float64
}

// Classify 对文本做确定性的本地情绪分类。纯函数：相同的文本与映射
// 必然得到相同结果；不访问网络，永不失败。
func Classify(text string, m emotionmodel.Mapping) emotionmodel.Analysis {
	tallies := make(map[string]*tally, len(m.EmotionMap))
	for id := range m.EmotionMap {
		tallies[id] = &tally{}
	}

	for keyword, id := range m.KeywordMap {
		if !strings.Contains(text, keyword) {
			continue
		}
		acc, ok := tallies[id]
		if !ok {
			continue
		}
		acc.count++
		acc.intensity += modifierFor(text, keyword)
	}

	vocabulary := m.Vocabulary()
	dominant := fallbackEmotion(vocabulary, m)
	maxScore := 0.0
	for _, id := range vocabulary {
		acc := tallies[id]
		score := 0.5*float64(acc.count) + 0.5*acc.intensity
		// 严格大于才替换，得分并列时保留词表顺序靠前的情绪。
		if score > maxScore {
			maxScore = score
			dominant = id
		}
	}

	confidence := baseConfidence + confidencePerScore*maxScore
	if confidence > 1 {
		confidence = 1
	}

	dominantTally := tallies[dominant]
	if dominantTally == nil {
		dominantTally = &tally{}
	}

	return emotionmodel.Analysis{
		Emotion:     displayName(m, dominant),
		Confidence:  confidence,
		Suggestions: buildSuggestions(m, dominant, dominantTally.intensity),
	}
}

// modifierFor 返回关键词此次出现的强度系数。依次检查每组修饰词是否
// 以 "修饰词+关键词" 的形式出现在文本中，第一个命中者生效，默认为 1。
func modifierFor(text, keyword string) float64 {
	for _, group := range modifierGroups {
		for _, phrase := range group.phrases {
			if strings.Contains(text, phrase+keyword) {
				return group.factor
			}
		}
	}
	return 1
}

func fallbackEmotion(vocabulary []string, m emotionmodel.Mapping) string {
	if _, ok := m.EmotionMap[string(emotionmodel.Neutral)]; ok {
		return string(emotionmodel.Neutral)
	}
	if len(vocabulary) > 0 {
		return vocabulary[0]
	}
	return string(emotionmodel.Neutral)
}

func displayName(m emotionmodel.Mapping, id string) string {
	if name, ok := m.EmotionMap[id]; ok {
		return name
	}
	return id
}

func buildSuggestions(m emotionmodel.Mapping, dominant string, intensity float64) []string {
	suggestions := make([]string, 0, len(m.SuggestionMap[dominant])+2)
	if summary, ok := m.SummaryMap[dominant]; ok {
		suggestions = append(suggestions, summary)
	}
	suggestions = append(suggestions, m.SuggestionMap[dominant]...)

	switch {
	case intensity > 1:
		suggestions = append(suggestions, strongIntensityRemark)
	case intensity > 0 && intensity < 1:
		suggestions = append(suggestions, subtleIntensityRemark)
	}
	return suggestions
}
