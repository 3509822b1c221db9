package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stone-price-service/internal/catalog/store"
	"stone-price-service/internal/config"
	serverhttp "stone-price-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	st := store.New(cfg.DataFile)
	if _, err := st.Products(); err != nil {
		// не фатально: синхронизатор мог ещё не положить файл,
		// каталог можно присылать вместе с запросом
		logger.Warn().Err(err).Str("path", cfg.DataFile).Msg("catalogue not loaded yet")
	}

	r := serverhttp.NewRouter(cfg, logger, st)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
