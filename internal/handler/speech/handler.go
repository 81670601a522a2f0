package speech

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	speechservice "github.com/tometh/soulvoice/internal/service/speech"
	"github.com/tometh/soulvoice/pkg/utils"
)

// Handler 语音合成的HTTP处理器
type Handler struct {
	synth speechservice.Synthesizer
}

// New 创建语音合成处理器。synth 可为 nil，此时总是返回兜底音频路径。
func New(synth speechservice.Synthesizer) *Handler {
	return &Handler{synth: synth}
}

// RegisterRoutes 注册语音合成相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/speech/synthesize", h.handleSynthesize)
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Type  string `json:"type"`
}

// handleSynthesize 合成一段语音并直接返回音频字节。
// 合成失败时返回内置兜底音频的路径，前端改为播放本地资源。
func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var payload synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	if h.synth == nil {
		h.respondFallback(w, payload.Type)
		return
	}

	audio, err := h.synth.Synthesize(r.Context(), payload.Text, payload.Voice)
	if err != nil {
		log.Printf("[speech] synthesis failed, falling back to default audio: %v", err)
		h.respondFallback(w, payload.Type)
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(audio.Data)
}

func (h *Handler) respondFallback(w http.ResponseWriter, meditationType string) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"fallbackAudio": speechservice.DefaultAudioPath(meditationType),
	})
}
