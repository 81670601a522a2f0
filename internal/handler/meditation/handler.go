package meditation

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	meditationmodel "github.com/tometh/soulvoice/internal/model/meditation"
	"github.com/tometh/soulvoice/pkg/utils"
)

// Scripter 是处理器依赖的冥想文案服务。
type Scripter interface {
	GenerateScript(ctx context.Context, prompt meditationmodel.Prompt, emotion string) string
	PhaseScripts(prompt meditationmodel.Prompt) []string
}

// Handler 冥想文案的HTTP处理器
type Handler struct {
	svc Scripter
}

// New 创建冥想文案处理器
func New(svc Scripter) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册冥想相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/meditation/script", h.handleScript)
	r.Post("/meditation/phases", h.handlePhases)
	r.Get("/meditation/stream", h.handleStream)
}

type scriptRequest struct {
	Type     string `json:"type"`
	Scene    string `json:"scene"`
	Duration int    `json:"duration"`
	Emotion  string `json:"emotion"`
}

func (r scriptRequest) prompt() meditationmodel.Prompt {
	return meditationmodel.Prompt{
		Type:     r.Type,
		Scene:    r.Scene,
		Duration: r.Duration,
	}
}

// handleScript 生成一段完整的冥想引导词
func (h *Handler) handleScript(w http.ResponseWriter, r *http.Request) {
	var payload scriptRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Type) == "" {
		utils.RespondError(w, http.StatusBadRequest, "type is required")
		return
	}

	script := h.svc.GenerateScript(r.Context(), payload.prompt(), payload.Emotion)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"script": script})
}

// handlePhases 返回开场、进行、收尾三段有序文案
func (h *Handler) handlePhases(w http.ResponseWriter, r *http.Request) {
	var payload scriptRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Type) == "" {
		utils.RespondError(w, http.StatusBadRequest, "type is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]string{
		"phases": h.svc.PhaseScripts(payload.prompt()),
	})
}

// handleStream 以SSE逐段推送三段文案，段间留出播报间隔。
// 参数走查询串，方便 EventSource 直接接入。
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	meditationType := strings.TrimSpace(r.URL.Query().Get("type"))
	if meditationType == "" {
		utils.RespondError(w, http.StatusBadRequest, "type is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	prompt := meditationmodel.Prompt{
		Type:  meditationType,
		Scene: r.URL.Query().Get("scene"),
	}

	utils.SetupSSEHeaders(w)

	phases := h.svc.PhaseScripts(prompt)
	names := []string{"opening", "main", "closing"}
	for i, text := range phases {
		name := "phase"
		if i < len(names) {
			name = names[i]
		}
		utils.SendSSEEvent(w, flusher, "phase", map[string]string{
			"phase": name,
			"text":  text,
		})

		if i < len(phases)-1 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(phaseGap):
			}
		}
	}

	utils.SendSSEEvent(w, flusher, "done", map[string]string{"type": meditationType})
}

// phaseGap 是相邻两段之间的推送间隔，给前端朗读留余量。
const phaseGap = 2 * time.Second
