package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config 描述推理服务网关的连接参数，凭证来自环境变量配置。
type Config struct {
	BaseURL         string
	Token           string
	ClassifierModel string
	GeneratorModel  string
	Timeout         time.Duration
}

// Gateway 封装对远程推理服务的 HTTP 调用。每次调用携带独立超时，
// 所有失败都转成 Outcome/Failure 返回值；网关内部不做重试，
// 回退顺序由各调用方自行决定。
type Gateway struct {
	cfg    Config
	client *http.Client
}

// NewGateway 创建网关实例。
func NewGateway(cfg Config) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Gateway{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// LabelScore 是远程分类器返回的单个候选情绪。
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyEmotion 调用远程情绪分类模型，返回按模型给出的候选标签列表。
func (g *Gateway) ClassifyEmotion(ctx context.Context, text string) ([]LabelScore, *Failure) {
	body := map[string]any{"inputs": text}
	outcome := g.post(ctx, g.modelURL(g.cfg.ClassifierModel), body)
	if !outcome.OK() {
		return nil, outcome.Failure
	}

	// 推理服务对分类模型返回嵌套数组 [[{label,score}...]]，个别部署返回平铺形式。
	var nested [][]LabelScore
	if err := json.Unmarshal(outcome.Payload, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []LabelScore
	if err := json.Unmarshal(outcome.Payload, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, &Failure{Kind: FailureSchema, Detail: "classifier payload has no label scores"}
}

// GenerateText 调用远程文本生成模型并返回生成的文本。
func (g *Gateway) GenerateText(ctx context.Context, prompt string, params map[string]any) (string, *Failure) {
	body := map[string]any{"inputs": prompt}
	if len(params) > 0 {
		body["parameters"] = params
	}

	outcome := g.post(ctx, g.modelURL(g.cfg.GeneratorModel), body)
	if !outcome.OK() {
		return "", outcome.Failure
	}

	var listPayload []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(outcome.Payload, &listPayload); err == nil && len(listPayload) > 0 {
		if text := strings.TrimSpace(listPayload[0].GeneratedText); text != "" {
			return text, nil
		}
	}

	var objPayload struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(outcome.Payload, &objPayload); err == nil {
		if text := strings.TrimSpace(objPayload.GeneratedText); text != "" {
			return text, nil
		}
	}

	return "", &Failure{Kind: FailureSchema, Detail: "generation payload has no generated_text"}
}

// post 执行一次带超时的 JSON POST 调用，是网关内唯一接触网络的入口。
func (g *Gateway) post(ctx context.Context, url string, body any) Outcome {
	payload, err := json.Marshal(body)
	if err != nil {
		return failure(FailureSchema, fmt.Sprintf("marshal request: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return failure(FailureNetwork, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return failure(FailureTimeout, err.Error())
		}
		return failure(FailureNetwork, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		if isTimeout(err) {
			return failure(FailureTimeout, err.Error())
		}
		return failure(FailureNetwork, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpFailure(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if !json.Valid(data) {
		return failure(FailureSchema, "response is not valid json")
	}
	return success(data)
}

func (g *Gateway) modelURL(model string) string {
	base := strings.TrimRight(g.cfg.BaseURL, "/")
	return base + "/models/" + model
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
