package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
	"github.com/tometh/soulvoice/pkg/utils"
)

// Analyzer 是处理器依赖的情绪分析入口。
type Analyzer interface {
	Analyze(ctx context.Context, text string) emotionmodel.Analysis
	AnalyzeLocal(text string) emotionmodel.Analysis
}

// Handler 情绪分析的HTTP处理器
type Handler struct {
	svc Analyzer
}

// New 创建情绪分析处理器
func New(svc Analyzer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册情绪分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/emotion/analyze", h.handleAnalyze)
	r.Get("/emotion/live", h.handleLive)
}

// handleAnalyze 对一段完整转写文本做情绪分析
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := h.svc.Analyze(r.Context(), payload.Text)
	utils.RespondJSON(w, http.StatusOK, result)
}
