package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/randimg/internal/core/ports"
	"github.com/GoArmGo/randimg/internal/domain"
	"github.com/GoArmGo/randimg/internal/messaging/payloads"
)

// ErrNoConsumer возвращается в режиме worker, если RabbitMQ не настроен
var ErrNoConsumer = errors.New("worker mode requires RABBITMQ_URL")

// runWorker запускает потребителя очереди уведомлений и пишет каждое уведомление в лог
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	consumer ports.NotificationConsumer,
) error {
	if consumer == nil {
		return ErrNoConsumer
	}

	logger.Info("worker started, waiting for notifications")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	err := consumer.StartConsumingNotifications(workerCtx, notificationLogger(logger))
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}

// notificationLogger возвращает обработчик, который пишет уведомление в лог
func notificationLogger(logger *slog.Logger) func(context.Context, payloads.NotificationPayload) error {
	return func(ctx context.Context, p payloads.NotificationPayload) error {
		level := slog.LevelInfo
		if p.Level == string(domain.NotificationError) {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "notification received",
			"id", p.ID,
			"kind", p.Level,
			"message", p.Message,
			"created_at", p.CreatedAt,
		)
		return nil
	}
}
