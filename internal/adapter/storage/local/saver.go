// internal/adapter/storage/local/saver.go
package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliercoder/grab"
)

// Saver скачивает файлы в локальный каталог
type Saver struct {
	client *grab.Client
	dir    string
	logger *slog.Logger
}

// NewSaver создает Saver, каталог создается при необходимости
func NewSaver(dir string, logger *slog.Logger) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir %s: %w", dir, err)
	}
	client := grab.NewClient()
	client.UserAgent = "randimg"
	return &Saver{client: client, dir: dir, logger: logger}, nil
}

// Save скачивает sourceURL в <dir>/<fileName>, существующий файл перезаписывается.
// Возвращает путь к файлу.
func (s *Saver) Save(ctx context.Context, sourceURL, fileName string) (string, error) {
	start := time.Now()
	dst := filepath.Join(s.dir, filepath.Base(fileName))

	req, err := grab.NewRequest(dst, sourceURL)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}
	req = req.WithContext(ctx)
	req.NoResume = true

	resp := s.client.Do(req)
	if err := resp.Err(); err != nil {
		s.logger.Error("download failed", "url", sourceURL, "file", dst, "error", err)
		return "", fmt.Errorf("download %s: %w", sourceURL, err)
	}

	s.logger.Info("file saved",
		"file", resp.Filename,
		"bytes", resp.BytesComplete(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Filename, nil
}
