package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Варианты хранилища для скачанных изображений
const (
	DownloadSinkLocal = "local"
	DownloadSinkS3    = "s3"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	// Ключ и адрес Unsplash намеренно не помечены required:
	// ошибка проявится только при запросе к API.
	UnsplashAPIURL    string        `env:"UNSPLASH_API_URL"`
	UnsplashAccessKey string        `env:"UNSPLASH_ACCESS_KEY"`
	UnsplashTimeout   time.Duration `env:"UNSPLASH_TIMEOUT"`

	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	DownloadSink   string `env:"DOWNLOAD_SINK"`
	DownloadDir    string `env:"DOWNLOAD_DIR"`
	DownloadPrefix string `env:"DOWNLOAD_PREFIX"`

	// Настройки для MinIO, нужны только при DOWNLOAD_SINK=s3
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION"`
	MinioPublicURL       string `env:"MINIO_PUBLIC_URL"`

	// Пустой RABBITMQ_URL отключает публикацию уведомлений
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"image_notifications"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	cfg.setDefaults()

	if cfg.DownloadSink != DownloadSinkLocal && cfg.DownloadSink != DownloadSinkS3 {
		return nil, fmt.Errorf("неизвестный DOWNLOAD_SINK: %q (используйте %q или %q)",
			cfg.DownloadSink, DownloadSinkLocal, DownloadSinkS3)
	}

	return &cfg, nil
}

// setDefaults вручную проставляет значения по умолчанию
func (c *Config) setDefaults() {
	if c.UnsplashAPIURL == "" {
		c.UnsplashAPIURL = "https://api.unsplash.com"
	}
	if c.UnsplashTimeout == 0 {
		c.UnsplashTimeout = 10 * time.Second
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.DownloadSink == "" {
		c.DownloadSink = DownloadSinkLocal
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "downloads"
	}
	if c.DownloadPrefix == "" {
		c.DownloadPrefix = "random-images/"
	}
}

// NotificationsEnabled сообщает, нужно ли публиковать уведомления в RabbitMQ
func (c *Config) NotificationsEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}
