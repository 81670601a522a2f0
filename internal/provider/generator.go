package provider

import (
	"context"
	"strings"
)

// TextGenerator 是内容生成提供方的统一入口。实现方把自身的错误
// 归一成 Failure 返回值，调用方据此走固定顺序的回退链。
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, system, query string) (string, *Failure)
}

// InferenceGenerator 通过网关调用托管推理服务的文本生成模型，
// 作为回退链里的次级提供方。
type InferenceGenerator struct {
	gateway *Gateway
	params  map[string]any
}

// NewInferenceGenerator 创建推理服务文本生成提供方。
func NewInferenceGenerator(gateway *Gateway) *InferenceGenerator {
	return &InferenceGenerator{
		gateway: gateway,
		params: map[string]any{
			"max_length":  500,
			"temperature": 0.7,
		},
	}
}

// Name 返回提供方标识，用于日志。
func (g *InferenceGenerator) Name() string {
	return "inference"
}

// Generate 把系统提示与用户提示拼成单段输入提交给生成模型。
func (g *InferenceGenerator) Generate(ctx context.Context, system, query string) (string, *Failure) {
	prompt := query
	if s := strings.TrimSpace(system); s != "" {
		prompt = s + "\n\n" + query
	}
	return g.gateway.GenerateText(ctx, prompt, g.params)
}
