package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tometh/soulvoice/internal/config"
	"github.com/tometh/soulvoice/internal/handler"
	"github.com/tometh/soulvoice/internal/provider"
	emotionservice "github.com/tometh/soulvoice/internal/service/emotion"
	mappingservice "github.com/tometh/soulvoice/internal/service/mapping"
	meditationservice "github.com/tometh/soulvoice/internal/service/meditation"
	speechservice "github.com/tometh/soulvoice/internal/service/speech"
	mappingstore "github.com/tometh/soulvoice/internal/store/mapping"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize mapping store with persisted snapshot if present
	store := mappingstore.NewStore(mappingstore.NewFileSnapshot(cfg.Mapping.CachePath))
	store.Bootstrap()

	// Initialize remote inference gateway (classifier + secondary generator)
	var gateway *provider.Gateway
	if cfg.Provider.Enabled() {
		gateway = provider.NewGateway(provider.Config{
			BaseURL:         cfg.Provider.BaseURL,
			Token:           cfg.Provider.Token,
			ClassifierModel: cfg.Provider.ClassifierModel,
			GeneratorModel:  cfg.Provider.GeneratorModel,
			Timeout:         cfg.Provider.Timeout,
		})
		log.Println("Inference gateway initialized successfully")
	} else {
		log.Println("推理服务凭证未配置，情绪分析将全程走本地分类器")
	}

	// Build text generation provider chain, Ark first
	var generators []provider.TextGenerator
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize Ark chat model: %v", err)
			log.Println("continuing without Ark generation - 请检查 Ark 模型相关环境变量")
		} else {
			arkGen, err := provider.NewArkGenerator(ctx, chatModel)
			if err != nil {
				log.Printf("warning: failed to build Ark generation chain: %v", err)
			} else {
				generators = append(generators, arkGen)
				log.Println("Ark generation provider initialized successfully")
			}
		}
	} else {
		log.Println("Ark 凭证未配置，跳过首选生成提供方")
	}
	if gateway != nil {
		generators = append(generators, provider.NewInferenceGenerator(gateway))
	}

	// Start background mapping refresher when any generator is available
	var refresher *mappingservice.Refresher
	if len(generators) > 0 {
		refresher = mappingservice.NewRefresher(store, generators, cfg.Mapping.RefreshInterval)
		go refresher.Run(ctx)
		log.Printf("Mapping refresher started, interval=%s", cfg.Mapping.RefreshInterval)
	} else {
		log.Println("无可用生成提供方，映射刷新已禁用，沿用默认映射")
	}

	var classifier emotionservice.Classifier
	if gateway != nil {
		classifier = gateway
	}
	emotionSvc := emotionservice.NewService(classifier, generators, store)
	meditationSvc := meditationservice.NewService(generators)

	// Initialize TTS client
	var synth speechservice.Synthesizer
	if cfg.Speech.Enabled {
		synth = speechservice.NewClient(speechservice.Config{
			BaseURL:     cfg.Speech.BaseURL,
			RefAudio:    cfg.Speech.RefAudio,
			Language:    cfg.Speech.Language,
			SpeedFactor: cfg.Speech.SpeedFactor,
			Timeout:     cfg.Speech.Timeout,
			Enabled:     cfg.Speech.Enabled,
		})
		log.Println("Speech synthesizer initialized successfully")
	} else {
		log.Println("语音服务未配置，合成请求将返回兜底音频")
	}

	router := handler.NewRouter(store, emotionSvc, meditationSvc, refresher, synth)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("SoulVoice backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
