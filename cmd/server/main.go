package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"flf-coach/internal/config"
	"flf-coach/internal/foodlog"
	"flf-coach/internal/handlers"
	"flf-coach/internal/openai"
	"flf-coach/internal/router"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	hasKey := cfg.OpenAIAPIKey != ""
	if !hasKey {
		log.Warn().Msg("OPENAI_API_KEY not set; /chat will report a configuration error until it is")
	}

	provider := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)

	chatHandler := handlers.NewChatHandler(
		provider,
		foodlog.DefaultClassifier,
		hasKey,
		cfg.ProviderTimeout,
		cfg.BlockFetchTimeout,
		log,
	)
	systemHandler := handlers.NewSystemHandler(hasKey)

	r := router.New(chatHandler, systemHandler, log)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The proxy holds the connection for up to the provider timeout plus
		// the follow-up block fetch; the write timeout must cover both.
		WriteTimeout: cfg.ProviderTimeout + cfg.BlockFetchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info().Str("port", cfg.Port).Bool("has_api_key", hasKey).Msg("chat backend listening")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
