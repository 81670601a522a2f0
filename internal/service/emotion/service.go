package emotion

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	analysis "github.com/tometh/soulvoice/internal/analysis/emotion"
	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
	"github.com/tometh/soulvoice/internal/provider"
	mappingstore "github.com/tometh/soulvoice/internal/store/mapping"
)

// Classifier 是远程情绪分类的入口，由提供方网关实现。
type Classifier interface {
	ClassifyEmotion(ctx context.Context, text string) ([]provider.LabelScore, *provider.Failure)
}

// Service 编排一次话语的情绪分析：优先走远程分类与远程文案生成，
// 任何一步失败都回退到本地关键词分类。Analyze 从不向调用方返回错误。
type Service struct {
	classifier Classifier
	generators []provider.TextGenerator
	store      *mappingstore.Store
	now        func() time.Time
}

// NewService 创建情绪分析编排服务。classifier 可为 nil，此时总是走本地分类。
func NewService(classifier Classifier, generators []provider.TextGenerator, store *mappingstore.Store) *Service {
	return &Service{
		classifier: classifier,
		generators: generators,
		store:      store,
		now:        time.Now,
	}
}

// Analyze 对一段转写文本做情绪分析。远程成功时用个性化文案充实建议；
// 远程失败时返回与本地分类器完全一致的结果，调用方总能拿到可用结果。
func (s *Service) Analyze(ctx context.Context, text string) emotionmodel.Analysis {
	mapping := s.store.Get()

	if s.classifier == nil {
		return analysis.Classify(text, mapping)
	}

	labels, fail := s.classifier.ClassifyEmotion(ctx, text)
	if fail != nil {
		log.Printf("[emotion] remote classification failed, using local classifier: %s", fail)
		return analysis.Classify(text, mapping)
	}
	if len(labels) == 0 {
		log.Println("[emotion] remote classifier returned no labels, using local classifier")
		return analysis.Classify(text, mapping)
	}

	top := pickTopLabel(labels)
	display, ok := mapping.EmotionMap[top.Label]
	if !ok {
		// 远程标签不在当前词表内，按 schema 失败处理。
		log.Printf("[emotion] remote label %q not in current vocabulary, using local classifier", top.Label)
		return analysis.Classify(text, mapping)
	}

	commentary, scene := s.generateEnrichments(ctx, text, display, top.Score)

	suggestions := make([]string, 0, len(mapping.SuggestionMap[top.Label])+2)
	if commentary != "" {
		suggestions = append(suggestions, commentary)
	}
	suggestions = append(suggestions, mapping.SuggestionMap[top.Label]...)
	if scene != "" {
		suggestions = append(suggestions, scene)
	}

	return emotionmodel.Analysis{
		Emotion:     display,
		Confidence:  clampConfidence(top.Score),
		Suggestions: suggestions,
	}
}

// AnalyzeLocal 跳过远程链路，直接用本地分类器给出结果。
// 用于实时转写的中间帧，避免为每个字符增量付出网络往返。
func (s *Service) AnalyzeLocal(text string) emotionmodel.Analysis {
	return analysis.Classify(text, s.store.Get())
}

// generateEnrichments 并发请求情绪评语与冥想场景，两者可独立失败。
// 失败只会少一条建议，从不让整次分析失败。
func (s *Service) generateEnrichments(ctx context.Context, text, emotion string, confidence float64) (string, string) {
	if len(s.generators) == 0 {
		return "", ""
	}

	var (
		wg         sync.WaitGroup
		commentary string
		scene      string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		commentary = s.generate(ctx, commentaryPrompt(text, emotion, confidence))
	}()
	go func() {
		defer wg.Done()
		scene = s.generate(ctx, scenePrompt(text, emotion, s.timeContext()))
	}()
	wg.Wait()

	return commentary, scene
}

func (s *Service) generate(ctx context.Context, prompt string) string {
	for _, gen := range s.generators {
		text, fail := gen.Generate(ctx, enrichmentSystemPrompt, prompt)
		if fail != nil {
			log.Printf("[emotion] provider %s enrichment failed: %s", gen.Name(), fail)
			continue
		}
		return strings.TrimSpace(text)
	}
	return ""
}

func (s *Service) timeContext() string {
	hour := s.now().Hour()
	if hour >= 18 || hour < 6 {
		return "夜晚"
	}
	return "白天"
}

func pickTopLabel(labels []provider.LabelScore) provider.LabelScore {
	top := labels[0]
	for _, candidate := range labels[1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}
	return top
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

const enrichmentSystemPrompt = "你是一名温暖、专业的情绪陪伴助手，回应简洁自然。"

func commentaryPrompt(text, emotion string, confidence float64) string {
	return fmt.Sprintf(`基于以下信息生成一段温暖、专业的情绪分析和建议：
用户说："%s"
检测到的情绪：%s
情绪强度：%.1f%%

请生成一段简短的回应，包含：
1. 对用户情绪状态的专业理解
2. 温暖的支持和理解
3. 积极的建议或引导

要求：
- 语言要自然、温暖
- 要体现专业性
- 要基于用户实际说的内容
- 长度控制在100字以内`, text, emotion, confidence*100)
}

func scenePrompt(text, emotion, timeContext string) string {
	return fmt.Sprintf(`基于以下信息，推荐一个适合冥想的场景：
用户说："%s"
当前情绪：%s
当前时间：%s

请生成一段场景描述，要求：
1. 场景要契合用户的情绪状态，针对%s情绪提供治愈和平衡的场景
2. 考虑当前是%s，描述相应的光线和氛围
3. 场景描述要有代入感和画面感，包含视觉、听觉、触觉等多种感官元素
4. 要包含环境声音的描述和自然元素
5. 长度控制在60字以内
6. 不要包含"推荐冥想场景："这个前缀
7. 描述要能够引导用户进入放松状态`, text, emotion, timeContext, emotion, timeContext)
}
