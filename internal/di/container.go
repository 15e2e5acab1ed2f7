package di

import (
	"fmt"
	"io"

	"github.com/GoArmGo/randimg/internal/adapter/clipboard"
	"github.com/GoArmGo/randimg/internal/adapter/notify"
	"github.com/GoArmGo/randimg/internal/adapter/storage/local"
	"github.com/GoArmGo/randimg/internal/adapter/storage/minio"
	"github.com/GoArmGo/randimg/internal/adapter/unsplash"
	"github.com/GoArmGo/randimg/internal/app"
	"github.com/GoArmGo/randimg/internal/config"
	"github.com/GoArmGo/randimg/internal/core/ports"
	"github.com/GoArmGo/randimg/internal/logger"
	"github.com/GoArmGo/randimg/internal/rabbitmq"
	"github.com/GoArmGo/randimg/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []io.Closer

	// 2. Клиент Unsplash
	fetcher := unsplash.NewUnsplashAPIClient(cfg, slogger)

	// 3. Хранилище для скачанных изображений
	var saver ports.FileSaver
	switch cfg.DownloadSink {
	case config.DownloadSinkS3:
		saver, err = minio.NewMinioClient(cfg, slogger)
	default:
		saver, err = local.NewSaver(cfg.DownloadDir, slogger)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s download sink: %w", cfg.DownloadSink, err)
	}
	slogger.Info("download sink initialized", "sink", cfg.DownloadSink)

	// 4. Уведомления: лента для страницы, лог и (опционально) RabbitMQ
	feed := notify.NewFeed(0)
	notifiers := []ports.Notifier{feed, notify.NewLog(slogger)}

	var consumer ports.NotificationConsumer
	if cfg.NotificationsEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:       cfg.RabbitMQ.RabbitMQURL,
			QueueName: cfg.RabbitMQ.RabbitMQQueueName,
		}, slogger)
		if err != nil {
			return nil, err
		}
		closers = append(closers, rabbitMQClient)
		notifiers = append(notifiers, notify.NewQueue(rabbitMQClient))
		consumer = rabbitMQClient
	}

	// 5. Контроллер страницы
	viewer := usecase.NewImageViewer(
		fetcher,
		clipboard.NewSystem(slogger),
		saver,
		notify.NewFanout(notifiers...),
		slogger,
	)

	// 6. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, viewer, feed, consumer, closers...)

	slogger.Info("all dependencies initialized")
	return application, nil
}
