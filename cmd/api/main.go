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

	"github.com/hanoivivu/assistant/internal/config"
	"github.com/hanoivivu/assistant/internal/handler"
	assistantHandler "github.com/hanoivivu/assistant/internal/handler/assistant"
	"github.com/hanoivivu/assistant/internal/model/place"
	"github.com/hanoivivu/assistant/internal/service/ai"
	"github.com/hanoivivu/assistant/internal/service/assistant"
	"github.com/hanoivivu/assistant/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	placeStore := place.NewMemoryStore(place.Seed())

	storage, err := store.NewFileStorage(cfg.Session.StorageDir)
	if err != nil {
		log.Fatalf("failed to open session storage: %v", err)
	}
	sessionCfg := store.Config{Key: cfg.Session.StorageKey, TTL: cfg.Session.TTL}

	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, placeStore, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the Ark environment variables")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	var responder assistantHandler.Responder
	if aiService != nil {
		responder = aiService
	}

	widgetClient := pickWidgetClient(cfg.Assistant, aiService)

	router := handler.NewRouter(placeStore, responder, widgetClient, storage, sessionCfg)

	startServer(ctx, cfg.Server, router)
}

// pickWidgetClient decides where hosted widget cores send their turns: a
// remote assistant service when one is configured, the in-process AI
// service otherwise. With neither available every turn takes the
// widget's fallback path.
func pickWidgetClient(cfg config.AssistantConfig, aiService *ai.Service) assistant.Client {
	if cfg.BaseURL != "" {
		log.Printf("widget turns go to remote assistant at %s", cfg.BaseURL)
		return assistant.NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	}
	if aiService != nil {
		log.Println("widget turns answered by the in-process AI service")
		return assistant.ClientFunc(aiService.Respond)
	}
	log.Println("no assistant backend configured; widget replies fall back to the keyword table")
	return assistant.ClientFunc(func(context.Context, string, string) (assistant.Reply, error) {
		return assistant.Reply{}, errors.New("no assistant backend configured")
	})
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("HanoiVivu assistant backend listening on %s", addr)
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
