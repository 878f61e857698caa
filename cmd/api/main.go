// Command api runs the wellness platform HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mindful-space/wellness-platform/internal/config"
	"github.com/mindful-space/wellness-platform/internal/events"
	"github.com/mindful-space/wellness-platform/internal/handler"
	"github.com/mindful-space/wellness-platform/internal/llm"
	"github.com/mindful-space/wellness-platform/internal/middleware"
	"github.com/mindful-space/wellness-platform/internal/service"
	"github.com/mindful-space/wellness-platform/internal/store"
	fsstore "github.com/mindful-space/wellness-platform/internal/store/firestore"
	"github.com/mindful-space/wellness-platform/internal/store/memory"
	"github.com/mindful-space/wellness-platform/internal/youtube"
	"github.com/mindful-space/wellness-platform/pkg/logger"
	"github.com/mindful-space/wellness-platform/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Global().Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		logger.Global().Fatal("failed to create logger", zap.Error(err))
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Endpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal("failed to init tracing", zap.Error(err))
		}
		defer tracing.Shutdown(context.Background(), tp)
	}

	var (
		conversationStore store.ConversationStore
		moodStore         store.MoodStore
		musicStore        store.MusicStore
		userStore         store.UserStore
	)
	switch cfg.Store.Backend {
	case "memory":
		log.Warn("using in-memory store, data will not survive restarts")
		conversationStore = memory.NewConversationStore()
		moodStore = memory.NewMoodStore()
		musicStore = memory.NewMusicStore()
		userStore = memory.NewUserStore()
	default:
		fs, err := fsstore.New(ctx, cfg.Store.ProjectID)
		if err != nil {
			log.Fatal("failed to connect to firestore", zap.Error(err))
		}
		defer fs.Close()
		conversationStore = fs
		moodStore = fs
		musicStore = fs
		userStore = fs
	}

	var publisher *events.Publisher
	var brokerHealth handler.BrokerHealth
	if cfg.NATS.URL != "" {
		natsClient, err := events.Connect(ctx, events.Config{
			URL:      cfg.NATS.URL,
			CAFile:   cfg.NATS.CAFile,
			CertFile: cfg.NATS.CertFile,
			KeyFile:  cfg.NATS.KeyFile,
			Token:    cfg.NATS.Token,
		}, log)
		if err != nil {
			log.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()

		publisher = events.NewPublisher(natsClient)
		brokerHealth = natsClient
		if err := publisher.EnsureStream(ctx); err != nil {
			log.Fatal("failed to ensure event stream", zap.Error(err))
		}
		log.Info("event publishing enabled", zap.String("url", cfg.NATS.URL))
	} else {
		log.Info("event publishing disabled")
	}

	llmClient, err := buildLLMClient(cfg)
	if err != nil {
		log.Fatal("failed to create response-generation client", zap.Error(err))
	}
	log.Info("response-generation provider ready", zap.String("provider", llmClient.Name()))

	searchClient := youtube.New(youtube.Config{APIKey: cfg.YouTube.APIKey}, log)

	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	conversationSvc := service.NewConversationService(conversationStore, eventPublisher, log)
	chatSvc := service.NewChatService(conversationSvc, llmClient, service.ChatConfig{
		Model:         cfg.LLM.Model,
		MaxTokens:     cfg.LLM.MaxTokens,
		HistoryWindow: cfg.LLM.HistoryWindow,
	}, log)
	wellnessSvc := service.NewWellnessService(moodStore, eventPublisher, log)
	musicSvc := service.NewMusicService(musicStore, searchClient, log)
	userSvc := service.NewUserService(userStore, log)

	healthHandler := handler.NewHealthHandler(brokerHealth)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	wellnessHandler := handler.NewWellnessHandler(wellnessSvc, log)
	musicHandler := handler.NewMusicHandler(musicSvc, log)
	userHandler := handler.NewUserHandler(userSvc, log)
	streamHandler := handler.NewStreamHandler(conversationSvc, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Logging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/v1/users/count", userHandler.Count)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute))

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)
			r.Get("/", conversationHandler.List)
			r.Delete("/", conversationHandler.DeleteAll)
			r.Get("/stream", streamHandler.ConversationList)
			r.Route("/{conversationID}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Put("/", conversationHandler.UpdateTitle)
				r.Delete("/", conversationHandler.Delete)
				r.Post("/messages", conversationHandler.AddMessage)
				r.Get("/stream", streamHandler.Conversation)
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Post("/messages", chatHandler.Send)
			r.Get("/messages", chatHandler.Session)
			r.Delete("/messages", chatHandler.End)
		})

		r.Route("/mood", func(r chi.Router) {
			r.Post("/", wellnessHandler.SaveMood)
			r.Get("/history", wellnessHandler.History)
			r.Get("/current", wellnessHandler.Current)
		})
		r.Get("/wellness/score", wellnessHandler.Score)

		r.Route("/music", func(r chi.Router) {
			r.Get("/recommendations", musicHandler.Recommendations)
			r.Get("/search", musicHandler.Search)
			r.Post("/preferences", musicHandler.SavePreference)
			r.Get("/preferences", musicHandler.Preferences)
		})

		r.Post("/users/profile", userHandler.EnsureProfile)
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout stays unset; it would cut long-lived SSE streams.
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "mock":
		return llm.NewMockClient(), nil
	case "anthropic":
		return llm.NewClient(llm.ProviderAnthropic, cfg.LLM.AnthropicAPIKey)
	default:
		return llm.NewClient(llm.ProviderOpenAI, cfg.LLM.OpenAIAPIKey)
	}
}
