package meditation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tometh/soulvoice/internal/model/meditation"
	"github.com/tometh/soulvoice/internal/provider"
)

// Service 生成冥想引导文案。按固定优先级尝试各远程提供方，
// 全部失败时退回静态模板，GenerateScript 总会返回非空文本。
type Service struct {
	generators []provider.TextGenerator
}

// NewService 创建冥想文案服务。generators 可为空，此时只用模板。
func NewService(generators []provider.TextGenerator) *Service {
	return &Service{generators: generators}
}

// GenerateScript 为一次冥想请求生成完整引导词。emotion 可为空，
// 不为空时提供方会围绕该情绪调整文案。
func (s *Service) GenerateScript(ctx context.Context, prompt meditation.Prompt, emotion string) string {
	query := scriptPrompt(prompt, emotion)

	for _, gen := range s.generators {
		text, fail := gen.Generate(ctx, scriptSystemPrompt, query)
		if fail != nil {
			log.Printf("[meditation] provider %s failed: %s", gen.Name(), fail)
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}

	log.Printf("[meditation] all providers failed for type=%s, using template script", prompt.Type)
	return templateScript(prompt)
}

// PhaseScripts 把同一请求拆成开场、进行、收尾三段有序文案，
// 供需要逐段播报的调用方使用。三段始终来自静态模板，保证可复现。
func (s *Service) PhaseScripts(prompt meditation.Prompt) []string {
	return phaseScripts(prompt)
}

const scriptSystemPrompt = "你是一名冥想引导师，输出可以直接朗读的中文引导词，语气舒缓。"

func scriptPrompt(prompt meditation.Prompt, emotion string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请为一段「%s」类型的冥想生成完整引导词。\n场景：%s\n", prompt.Type, prompt.Scene)
	if prompt.Duration > 0 {
		fmt.Fprintf(&b, "时长：约%d分钟\n", prompt.Duration)
	}
	if emotion != "" {
		fmt.Fprintf(&b, "听众当前情绪：%s，请围绕该情绪给予安抚与引导。\n", emotion)
	}
	b.WriteString("要求：包含开场引导、呼吸引导、场景化正文与收尾祝福，正文要自然融入给定场景。")
	return b.String()
}
