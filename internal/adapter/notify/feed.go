package notify

import (
	"context"
	"sync"

	"github.com/GoArmGo/randimg/internal/domain"
)

const defaultFeedCapacity = 20

// Feed хранит последние уведомления до тех пор, пока страница их не покажет.
// При переполнении отбрасываются самые старые.
type Feed struct {
	mu       sync.Mutex
	items    []domain.Notification
	capacity int
}

// NewFeed создаёт ленту уведомлений; capacity <= 0 означает значение по умолчанию
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{capacity: capacity}
}

// Notify добавляет уведомление в ленту
func (f *Feed) Notify(_ context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.capacity; over > 0 {
		f.items = append([]domain.Notification(nil), f.items[over:]...)
	}
	return nil
}

// Drain возвращает накопленные уведомления в порядке поступления и очищает ленту
func (f *Feed) Drain() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.items
	f.items = nil
	return items
}

// Len возвращает количество непоказанных уведомлений
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
