package usecase

import (
	"context"
	"errors"

	"github.com/GoArmGo/randimg/internal/domain"
)

// Тексты уведомлений, которые видит пользователь
const (
	MsgNoImage           = "No Image Data Found"
	MsgLinkCopied        = "Link Copied to Clipboard"
	MsgImageDownloaded   = "Image Downloaded Successfully"
	MsgFetchFailedFmt    = "Error fetching images: %s"
	MsgCopyFailedFmt     = "Error copying link: %s"
	MsgDownloadFailedFmt = "Error downloading image: %s"
)

var (
	// ErrNoImage возвращается действиями копирования и скачивания, пока фото не загружено
	ErrNoImage = errors.New("no image loaded")

	// ErrStaleResponse возвращается запросом, который успел устареть:
	// после него был выпущен более новый запрос, и его результат отброшен
	ErrStaleResponse = errors.New("stale image response discarded")
)

// ViewState снимок состояния для отрисовки страницы
type ViewState struct {
	Record  *domain.ImageRecord `json:"image,omitempty"`
	Loading bool                `json:"loading"`
}

// HasImage сообщает, загружено ли фото
func (s ViewState) HasImage() bool {
	return s.Record != nil
}

// ImageViewer определяет интерфейс контроллера страницы:
// хранит текущее фото и обрабатывает действия пользователя
type ImageViewer interface {
	// RequestImage запрашивает новое случайное фото.
	// loading сбрасывается при любом исходе; результат устаревшего запроса отбрасывается.
	RequestImage(ctx context.Context) error

	// BeginRequest выпускает номер нового запроса и сразу включает loading.
	// Вместе с CompleteRequest позволяет выполнить запрос в фоне так,
	// чтобы состояние загрузки было видно еще до его завершения.
	BeginRequest() uint64

	// CompleteRequest получает фото для запроса с номером seq, выпущенного BeginRequest
	CompleteRequest(ctx context.Context, seq uint64) error

	// CopyLink копирует ссылку на полноразмерное фото в буфер обмена
	CopyLink(ctx context.Context) error

	// DownloadImage сохраняет полноразмерное фото как <slug>.jpg
	DownloadImage(ctx context.Context) error

	// State возвращает текущее состояние
	State() ViewState
}
