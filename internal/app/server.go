package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/randimg/internal/adapter/notify"
	"github.com/GoArmGo/randimg/internal/config"
	"github.com/GoArmGo/randimg/internal/handler"
	"github.com/GoArmGo/randimg/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// runServer запускает HTTP сервер со страницей и блокируется до отмены ctx
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	viewer usecase.ImageViewer,
	feed *notify.Feed,
) error {
	// фоновые запросы фото не должны обрываться вместе с HTTP-запросом
	imageHandler := handler.NewImageHandler(context.WithoutCancel(ctx), viewer, feed, logger)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler.NewRouter(imageHandler, logger, cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// дожидаемся фоновых запросов, чтобы их уведомления не потерялись
	if err := imageHandler.Wait(ctxServer); err != nil {
		logger.Warn("background image requests still running on shutdown", "error", err)
	}

	logger.Info("http server stopped")
	return nil
}
