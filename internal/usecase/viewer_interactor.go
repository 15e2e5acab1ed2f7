package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/randimg/internal/core/ports"
	"github.com/GoArmGo/randimg/internal/domain"
)

// imageViewer implements ImageViewer
type imageViewer struct {
	fetcher   ports.ImageFetcher
	clipboard ports.Clipboard
	saver     ports.FileSaver
	notifier  ports.Notifier
	logger    *slog.Logger

	mu      sync.Mutex
	record  *domain.ImageRecord
	loading bool
	// latest номер последнего выпущенного запроса
	latest uint64
}

// NewImageViewer создает новый экземпляр ImageViewer
// принимает реализации портов платформы (fetcher, буфер обмена, сохранение файлов, уведомления)
func NewImageViewer(
	fetcher ports.ImageFetcher,
	clipboard ports.Clipboard,
	saver ports.FileSaver,
	notifier ports.Notifier,
	logger *slog.Logger,
) ImageViewer {
	return &imageViewer{
		fetcher:   fetcher,
		clipboard: clipboard,
		saver:     saver,
		notifier:  notifier,
		logger:    logger,
	}
}

// RequestImage запрашивает случайное фото.
// Каждый запрос получает порядковый номер; применяется только результат последнего выпущенного,
// поэтому поздно пришедший ответ старого запроса не перезапишет более новый.
func (v *imageViewer) RequestImage(ctx context.Context) error {
	return v.CompleteRequest(ctx, v.BeginRequest())
}

// BeginRequest выпускает номер нового запроса и включает loading
func (v *imageViewer) BeginRequest() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest++
	v.loading = true
	return v.latest
}

// CompleteRequest выполняет запрос seq и применяет результат, только если seq все еще последний
func (v *imageViewer) CompleteRequest(ctx context.Context, seq uint64) error {
	start := time.Now()
	v.logger.Debug("requesting random image", "seq", seq)

	record, err := v.fetcher.FetchRandomImage(ctx)

	v.mu.Lock()
	if seq != v.latest {
		latest := v.latest
		v.mu.Unlock()
		v.logger.Info("discarding stale image response",
			"seq", seq,
			"latest", latest,
			"failed", err != nil,
		)
		return ErrStaleResponse
	}
	v.loading = false
	if err == nil {
		v.record = record
	}
	v.mu.Unlock()

	if err != nil {
		v.logger.Error("failed to fetch random image", "seq", seq, "error", err)
		v.notify(ctx, domain.Failure(fmt.Sprintf(MsgFetchFailedFmt, err.Error())))
		return fmt.Errorf("usecase: ошибка при получении случайного фото: %w", err)
	}

	v.logger.Info("image loaded",
		"seq", seq,
		"id", record.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// CopyLink копирует ссылку на полноразмерное фото в буфер обмена
func (v *imageViewer) CopyLink(ctx context.Context) error {
	record := v.current()
	if record == nil {
		v.notify(ctx, domain.Failure(MsgNoImage))
		return ErrNoImage
	}

	if err := v.clipboard.WriteText(record.URLs.Full); err != nil {
		v.logger.Error("failed to copy link", "id", record.ID, "error", err)
		v.notify(ctx, domain.Failure(fmt.Sprintf(MsgCopyFailedFmt, err.Error())))
		return fmt.Errorf("usecase: ошибка копирования ссылки: %w", err)
	}

	v.logger.Info("link copied", "id", record.ID)
	v.notify(ctx, domain.Success(MsgLinkCopied))
	return nil
}

// DownloadImage сохраняет полноразмерное фото под именем <slug>.jpg.
// Уведомление об успехе отправляется сразу по результату сохранения.
func (v *imageViewer) DownloadImage(ctx context.Context) error {
	record := v.current()
	if record == nil {
		v.notify(ctx, domain.Failure(MsgNoImage))
		return ErrNoImage
	}

	start := time.Now()
	fileName := record.FileName()

	location, err := v.saver.Save(ctx, record.DownloadSource(), fileName)
	if err != nil {
		v.logger.Error("failed to download image", "id", record.ID, "file", fileName, "error", err)
		v.notify(ctx, domain.Failure(fmt.Sprintf(MsgDownloadFailedFmt, err.Error())))
		return fmt.Errorf("usecase: ошибка скачивания фото %s: %w", record.ID, err)
	}

	v.logger.Info("image downloaded",
		"id", record.ID,
		"file", fileName,
		"location", location,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	v.notify(ctx, domain.Success(MsgImageDownloaded))
	return nil
}

// State возвращает снимок текущего состояния
func (v *imageViewer) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ViewState{Record: v.record, Loading: v.loading}
}

func (v *imageViewer) current() *domain.ImageRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.record
}

// notify отправляет уведомление; ошибка доставки только логируется
func (v *imageViewer) notify(ctx context.Context, n domain.Notification) {
	if err := v.notifier.Notify(ctx, n); err != nil {
		v.logger.Warn("failed to deliver notification", "message", n.Message, "error", err)
	}
}
