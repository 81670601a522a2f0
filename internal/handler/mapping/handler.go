package mapping

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	emotionmodel "github.com/tometh/soulvoice/internal/model/emotion"
	"github.com/tometh/soulvoice/pkg/utils"
)

// Provider 返回当前生效的映射快照。
type Provider interface {
	Get() emotionmodel.Mapping
}

// Triggerer 请求尽快执行一次后台刷新。
type Triggerer interface {
	RefreshNow()
}

// Handler 映射仓库的HTTP处理器
type Handler struct {
	store     Provider
	refresher Triggerer
}

// New 创建映射处理器。refresher 可为 nil，此时刷新接口返回不可用。
func New(store Provider, refresher Triggerer) *Handler {
	return &Handler{store: store, refresher: refresher}
}

// RegisterRoutes 注册映射相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mapping", h.handleGet)
	r.Post("/mapping/refresh", h.handleRefresh)
}

// handleGet 返回当前生效的四张映射表
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Get())
}

// handleRefresh 触发一次后台刷新。刷新异步执行，立即返回 202。
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "mapping refresher is not configured")
		return
	}

	h.refresher.RefreshNow()
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}
