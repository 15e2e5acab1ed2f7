package clipboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ErrUnsupported возвращается, если в системе нет доступного буфера обмена
// (например, сервер запущен без xclip/xsel/wl-copy)
var ErrUnsupported = errors.New("clipboard is not available on this system")

// System пишет текст в системный буфер обмена
type System struct {
	logger *slog.Logger
}

func NewSystem(logger *slog.Logger) *System {
	if clipboard.Unsupported {
		logger.Warn("system clipboard is unsupported, copy link will fail")
	}
	return &System{logger: logger}
}

func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write to clipboard: %w", err)
	}
	s.logger.Debug("text copied to clipboard", "length", len(text))
	return nil
}
