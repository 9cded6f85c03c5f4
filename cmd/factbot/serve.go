package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/techfacts/factbot/internal/bot"
	"github.com/techfacts/factbot/internal/botframework"
	"github.com/techfacts/factbot/internal/card"
	"github.com/techfacts/factbot/internal/config"
	"github.com/techfacts/factbot/internal/conversation"
	"github.com/techfacts/factbot/internal/facts"
	"github.com/techfacts/factbot/internal/logger"
	"github.com/techfacts/factbot/internal/nlu"
	"github.com/techfacts/factbot/internal/store"
	"github.com/techfacts/factbot/internal/webchat"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chat endpoint",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer db.Close()

	classifier, err := newClassifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}

	convs := conversation.NewManager()
	go sweepConversations(ctx, convs, log)

	router := bot.NewRouter(
		classifier,
		facts.NewResolver(db, cfg.StoreTimeout, log),
		card.NewPresenter(cfg.IconStorageURL),
		botframework.NewConnector(cfg.MicrosoftAppID, cfg.MicrosoftAppPassword),
		convs,
		cfg.IntentThreshold,
		log,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newHTTPHandler(db, router, webchat.NewHandler(cfg.WebchatEmbedURL, log), log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("factbot: listening",
			zap.String("addr", srv.Addr),
			zap.String("store", store.Describe(cfg)),
			zap.String("nlu", cfg.NLUProvider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	log.Info("factbot: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("factbot: stopped")
	return nil
}

func newHTTPHandler(db store.FactStore, router *bot.Router, chat *webchat.Handler, log *zap.Logger) http.Handler {
	webhook := botframework.NewWebhookHandler(router.HandleActivity, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Warn("ready: store ping failed", zap.Error(err))
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/messages", webhook.HandleMessages)
	r.Get("/webchat.js", chat.HandleScript)

	return r
}

func newClassifier(ctx context.Context, cfg *config.Config) (nlu.Classifier, error) {
	switch cfg.NLUProvider {
	case config.NLUProviderGemini:
		keys := []string{"random"}
		for _, f := range facts.Seed() {
			keys = append(keys, f.Key)
		}
		return nlu.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, keys)
	default:
		return nlu.NewLUISClient(cfg.LUISAPIHostName, cfg.LUISAppID, cfg.LUISAPIKey), nil
	}
}

// sweepConversations periodically drops idle per-conversation locks.
func sweepConversations(ctx context.Context, convs *conversation.Manager, log *zap.Logger) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := convs.Cleanup(time.Hour); n > 0 {
				log.Debug("conversation: swept idle locks", zap.Int("count", n))
			}
		}
	}
}
