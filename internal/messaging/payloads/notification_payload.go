package payloads

import (
	"time"

	"github.com/GoArmGo/randimg/internal/domain"
)

// NotificationPayload представляет уведомление, передаваемое через RabbitMQ.
type NotificationPayload struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FromNotification собирает payload из доменного уведомления
func FromNotification(n domain.Notification) NotificationPayload {
	return NotificationPayload{
		ID:        n.ID.String(),
		Level:     string(n.Level),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
