package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	emotionHandler "github.com/tometh/soulvoice/internal/handler/emotion"
	mappingHandler "github.com/tometh/soulvoice/internal/handler/mapping"
	meditationHandler "github.com/tometh/soulvoice/internal/handler/meditation"
	speechHandler "github.com/tometh/soulvoice/internal/handler/speech"
	middlewarePkg "github.com/tometh/soulvoice/internal/middleware"
	emotionService "github.com/tometh/soulvoice/internal/service/emotion"
	mappingService "github.com/tometh/soulvoice/internal/service/mapping"
	meditationService "github.com/tometh/soulvoice/internal/service/meditation"
	speechService "github.com/tometh/soulvoice/internal/service/speech"
	mappingStore "github.com/tometh/soulvoice/internal/store/mapping"
	"github.com/tometh/soulvoice/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	store *mappingStore.Store,
	emotionSvc *emotionService.Service,
	meditationSvc *meditationService.Service,
	refresher *mappingService.Refresher,
	synth speechService.Synthesizer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		emotionHandler.New(emotionSvc).RegisterRoutes(api)
		meditationHandler.New(meditationSvc).RegisterRoutes(api)

		// refresher 为 nil 时接口仍注册，刷新请求返回 503。
		var trigger mappingHandler.Triggerer
		if refresher != nil {
			trigger = refresher
		}
		mappingHandler.New(store, trigger).RegisterRoutes(api)

		speechHandler.New(synth).RegisterRoutes(api)
	})

	return r
}
