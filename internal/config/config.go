package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Provider ProviderConfig
	Mapping  MappingConfig
	Speech   SpeechConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	providerCfg, err := loadProviderConfig()
	if err != nil {
		return nil, err
	}

	mappingCfg, err := loadMappingConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Provider: providerCfg,
		Mapping:  mappingCfg,
		Speech:   speech,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述 Ark 大模型相关配置，作为内容生成的首选提供方。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// ProviderConfig 描述托管推理服务（远程分类与次级文本生成）的配置。
type ProviderConfig struct {
	BaseURL         string
	Token           string
	ClassifierModel string
	GeneratorModel  string
	Timeout         time.Duration
}

// Enabled 表示远程推理服务是否可用。
func (c ProviderConfig) Enabled() bool {
	return c.Token != ""
}

func loadProviderConfig() (ProviderConfig, error) {
	timeoutSeconds, err := parseOptionalIntEnv("HF_TIMEOUT")
	if err != nil {
		return ProviderConfig{}, err
	}
	timeout := 10 * time.Second
	if timeoutSeconds != nil {
		timeout = time.Duration(*timeoutSeconds) * time.Second
	}

	return ProviderConfig{
		BaseURL:         getEnvOrDefault("HF_BASE_URL", "https://api-inference.huggingface.co"),
		Token:           strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		ClassifierModel: getEnvOrDefault("HF_CLASSIFIER_MODEL", "j-hartmann/emotion-english-distilroberta-base"),
		GeneratorModel:  getEnvOrDefault("HF_GENERATOR_MODEL", "THUDM/chatglm3-6b"),
		Timeout:         timeout,
	}, nil
}

// MappingConfig 描述情绪映射的缓存与后台刷新配置。
type MappingConfig struct {
	CachePath       string
	RefreshInterval time.Duration
}

func loadMappingConfig() (MappingConfig, error) {
	intervalMinutes, err := parseOptionalIntEnv("MAPPING_REFRESH_MINUTES")
	if err != nil {
		return MappingConfig{}, err
	}
	interval := 6 * time.Hour
	if intervalMinutes != nil && *intervalMinutes > 0 {
		interval = time.Duration(*intervalMinutes) * time.Minute
	}

	return MappingConfig{
		CachePath:       getEnvOrDefault("MAPPING_CACHE_PATH", "data/emotion_mapping.json"),
		RefreshInterval: interval,
	}, nil
}

// SpeechConfig 描述 TTS 协作方的配置。
type SpeechConfig struct {
	BaseURL     string
	RefAudio    string
	Language    string
	SpeedFactor float32
	Timeout     time.Duration
	Enabled     bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeoutSeconds, err := parseOptionalIntEnv("TTS_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeout := 30 * time.Second
	if timeoutSeconds != nil {
		timeout = time.Duration(*timeoutSeconds) * time.Second
	}

	speed, err := parseOptionalFloat32Env("TTS_SPEED_FACTOR")
	if err != nil {
		return SpeechConfig{}, err
	}
	speedFactor := float32(0.7)
	if speed != nil {
		speedFactor = *speed
	}

	baseURL := strings.TrimSpace(os.Getenv("TTS_BASE_URL"))

	return SpeechConfig{
		BaseURL:     baseURL,
		RefAudio:    getEnvOrDefault("TTS_REF_AUDIO", "t1"),
		Language:    getEnvOrDefault("TTS_LANGUAGE", "zh"),
		SpeedFactor: speedFactor,
		Timeout:     timeout,
		Enabled:     baseURL != "",
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
