package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoArmGo/randimg/internal/domain"
	"github.com/GoArmGo/randimg/internal/usecase"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// NotificationFeed источник непоказанных уведомлений для страницы
type NotificationFeed interface {
	Drain() []domain.Notification
}

// ImageHandler — обработчик HTTP-запросов страницы со случайным фото.
type ImageHandler struct {
	viewer usecase.ImageViewer
	feed   NotificationFeed
	logger *slog.Logger
	// background контекст для фоновых запросов фото, живет дольше HTTP-запроса
	background context.Context
	inflight   sync.WaitGroup
}

// NewImageHandler создаёт новый экземпляр ImageHandler.
func NewImageHandler(
	background context.Context,
	viewer usecase.ImageViewer,
	feed NotificationFeed,
	logger *slog.Logger,
) *ImageHandler {
	return &ImageHandler{
		viewer:     viewer,
		feed:       feed,
		logger:     logger,
		background: background,
	}
}

type pageData struct {
	State         usecase.ViewState
	Notifications []domain.Notification
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// Index — отрисовывает страницу с текущим состоянием и уведомлениями.
func (h *ImageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		State:         h.viewer.State(),
		Notifications: h.feed.Drain(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

// RequestImage — запускает получение нового фото в фоне и возвращает на страницу.
func (h *ImageHandler) RequestImage(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("processing request", "endpoint", "RequestImage")

	// loading включается до редиректа, чтобы следующая страница уже показала загрузку
	seq := h.viewer.BeginRequest()

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		// ошибки уже доставлены пользователю уведомлением
		if err := h.viewer.CompleteRequest(h.background, seq); err != nil && !errors.Is(err, usecase.ErrStaleResponse) {
			h.logger.Warn("background image request failed", "seq", seq, "error", err)
		}
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Wait ждет завершения фоновых запросов фото, но не дольше, чем живет ctx.
func (h *ImageHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CopyLink — копирует ссылку на текущее фото.
func (h *ImageHandler) CopyLink(w http.ResponseWriter, r *http.Request) {
	if err := h.viewer.CopyLink(r.Context()); err != nil {
		h.logger.Warn("copy link failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DownloadImage — сохраняет текущее фото.
func (h *ImageHandler) DownloadImage(w http.ResponseWriter, r *http.Request) {
	if err := h.viewer.DownloadImage(r.Context()); err != nil {
		h.logger.Warn("download failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetState — возвращает текущее состояние в JSON.
func (h *ImageHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.viewer.State(), h.logger)
}

// Health — проверка живости.
func (h *ImageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
