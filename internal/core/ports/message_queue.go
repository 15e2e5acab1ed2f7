package ports

import (
	"context"

	"github.com/GoArmGo/randimg/internal/messaging/payloads"
)

// NotificationPublisher публикует уведомления в очередь,
// используется как один из получателей Notifier
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, payload payloads.NotificationPayload) error
}

// NotificationConsumer определяет методы для потребления уведомлений из очереди,
// используется воркером
type NotificationConsumer interface {
	// StartConsumingNotifications начинает прослушивание очереди уведомлений,
	// handler вызывается для каждого полученного сообщения
	StartConsumingNotifications(ctx context.Context, handler func(context.Context, payloads.NotificationPayload) error) error
}
