package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Synthesizer 是文本转语音协作方。核心只把返回值当作不透明的音频载荷，
// 从不解析音频字节本身。
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (*Audio, error)
}

// Audio 是一次合成的结果载荷。
type Audio struct {
	Data        []byte
	ContentType string
}

// Config 描述 TTS 服务的连接参数。
type Config struct {
	BaseURL     string
	RefAudio    string
	Language    string
	SpeedFactor float32
	Timeout     time.Duration
	Enabled     bool
}

// Client 调用流式 TTS 服务合成语音。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient 创建 TTS 客户端。
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Language == "" {
		cfg.Language = "zh"
	}
	if cfg.SpeedFactor <= 0 {
		cfg.SpeedFactor = 0.7
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Synthesize 合成一段语音，返回音频字节与内容类型。
func (c *Client) Synthesize(ctx context.Context, text, voice string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("tts text is empty")
	}
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("tts service is not configured")
	}

	ref := strings.TrimSpace(voice)
	if ref == "" {
		ref = c.cfg.RefAudio
	}

	query := url.Values{}
	query.Set("text", text)
	query.Set("text_lang", c.cfg.Language)
	query.Set("ref_audio_path", ref)
	query.Set("prompt_lang", c.cfg.Language)
	query.Set("text_split_method", "cut5")
	query.Set("batch_size", "1")
	query.Set("media_type", "wav")
	query.Set("streaming_mode", "true")
	query.Set("speed_factor", fmt.Sprintf("%.1f", c.cfg.SpeedFactor))

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/tts?" + query.Encode()

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tts service returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "audio") {
		return nil, fmt.Errorf("tts response is not audio, content-type: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}

	return &Audio{Data: data, ContentType: contentType}, nil
}

// DefaultAudioPath 返回某冥想类型的内置兜底音频路径，合成失败时使用。
func DefaultAudioPath(meditationType string) string {
	// 目前所有类型共用同一段背景音乐。
	_ = meditationType
	return "/meditation/music.wav"
}
