package ports

//go:generate mockgen -source=platform.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/GoArmGo/randimg/internal/domain"
)

// ImageFetcher получает одно случайное фото из внешнего источника (Unsplash API)
type ImageFetcher interface {
	FetchRandomImage(ctx context.Context) (*domain.ImageRecord, error)
}

// Clipboard записывает текст в буфер обмена платформы
type Clipboard interface {
	WriteText(text string) error
}

// FileSaver сохраняет файл по адресу sourceURL под именем fileName.
// Возвращает итоговое расположение файла (путь на диске или URL в хранилище).
type FileSaver interface {
	Save(ctx context.Context, sourceURL, fileName string) (string, error)
}

// Notifier доставляет уведомления пользователю
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
