package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/GoArmGo/randimg/internal/core/ports"
	"github.com/GoArmGo/randimg/internal/domain"
	"github.com/GoArmGo/randimg/internal/messaging/payloads"
)

// Log пишет уведомления в структурированный лог
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, n domain.Notification) error {
	level := slog.LevelInfo
	if n.Level == domain.NotificationError {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, "notification",
		"id", n.ID,
		"kind", n.Level,
		"message", n.Message,
	)
	return nil
}

// Queue публикует уведомления в очередь сообщений
type Queue struct {
	publisher ports.NotificationPublisher
}

func NewQueue(publisher ports.NotificationPublisher) *Queue {
	return &Queue{publisher: publisher}
}

func (q *Queue) Notify(ctx context.Context, n domain.Notification) error {
	return q.publisher.PublishNotification(ctx, payloads.FromNotification(n))
}

// Fanout доставляет уведомление всем получателям.
// Ошибка одного получателя не мешает остальным, ошибки объединяются.
type Fanout struct {
	notifiers []ports.Notifier
}

func NewFanout(notifiers ...ports.Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

func (f *Fanout) Notify(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, notifier := range f.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
