package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLevel задаёт тип всплывающего уведомления
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification представляет одно уведомление пользователю (toast)
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewNotification создаёт уведомление с новым ID
func NewNotification(level NotificationLevel, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

func Success(message string) Notification {
	return NewNotification(NotificationSuccess, message)
}

func Failure(message string) Notification {
	return NewNotification(NotificationError, message)
}
