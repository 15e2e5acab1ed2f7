package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/randimg/internal/adapter/notify"
	"github.com/GoArmGo/randimg/internal/config"
	"github.com/GoArmGo/randimg/internal/core/ports"
	"github.com/GoArmGo/randimg/internal/usecase"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config               *config.Config
	logger               *slog.Logger
	viewer               usecase.ImageViewer
	feed                 *notify.Feed
	notificationConsumer ports.NotificationConsumer
	closers              []io.Closer
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	viewer usecase.ImageViewer,
	feed *notify.Feed,
	notificationConsumer ports.NotificationConsumer,
	closers ...io.Closer) *App {
	return &App{
		Config:               cfg,
		logger:               logger,
		viewer:               viewer,
		feed:                 feed,
		notificationConsumer: notificationConsumer,
		closers:              closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error

	switch *mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.logger, a.viewer, a.feed)

	case ModeWorker:
		err = runWorker(ctx, a.logger, a.notificationConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте '%s' или '%s')", *mode, ModeServer, ModeWorker)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
