package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ArkGenerator 用 Ark 聊天模型做文本生成，是回退链里的首选提供方。
type ArkGenerator struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkGenerator 基于现有聊天模型编译生成链。
func NewArkGenerator(ctx context.Context, chatModel model.ChatModel) (*ArkGenerator, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile ark generation chain: %w", err)
	}

	return &ArkGenerator{chain: runnable}, nil
}

// Name 返回提供方标识，用于日志。
func (g *ArkGenerator) Name() string {
	return "ark"
}

// Generate 调用生成链并把错误归一成 Failure。
func (g *ArkGenerator) Generate(ctx context.Context, system, query string) (string, *Failure) {
	if system == "" {
		system = "你是一名温暖、专业的情绪陪伴助手。"
	}

	msg, err := g.chain.Invoke(ctx, map[string]any{
		"system": system,
		"query":  query,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Failure{Kind: FailureTimeout, Detail: err.Error()}
		}
		return "", &Failure{Kind: FailureNetwork, Detail: err.Error()}
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", &Failure{Kind: FailureSchema, Detail: "model returned empty content"}
	}
	return strings.TrimSpace(msg.Content), nil
}
