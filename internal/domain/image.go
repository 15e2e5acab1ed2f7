package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NoDescription подставляется в подпись, если у фото нет alt_description
const NoDescription = "No Description"

// ErrInvalidImage возвращается, когда ответ API не соответствует ожидаемой структуре
var ErrInvalidImage = errors.New("invalid image record")

// ImageURLs хранит ссылки на разные размеры фото
type ImageURLs struct {
	Full    string `json:"full" validate:"required,url"`
	Regular string `json:"regular" validate:"required,url"`
}

// ImageLinks хранит служебные ссылки фото
type ImageLinks struct {
	Download string `json:"download,omitempty" validate:"omitempty,url"`
}

// AlternativeSlugs хранит слаги фото на разных языках
type AlternativeSlugs struct {
	En string `json:"en" validate:"required"`
}

// ImageRecord представляет одно случайное фото, полученное из внешнего API.
// После получения не изменяется, заменяется целиком следующим запросом.
type ImageRecord struct {
	ID               string           `json:"id"`
	AltDescription   string           `json:"alt_description,omitempty"`
	URLs             ImageURLs        `json:"urls"`
	Links            ImageLinks       `json:"links"`
	AlternativeSlugs AlternativeSlugs `json:"alternative_slugs"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Caption возвращает подпись к фото
func (r *ImageRecord) Caption() string {
	if r.AltDescription == "" {
		return NoDescription
	}
	return r.AltDescription
}

// FileName возвращает имя файла для скачивания: <slug>.jpg
func (r *ImageRecord) FileName() string {
	return r.AlternativeSlugs.En + ".jpg"
}

// DownloadSource возвращает адрес, с которого скачивается файл
func (r *ImageRecord) DownloadSource() string {
	return r.URLs.Full
}

// Validate проверяет, что в записи есть все поля, которые использует приложение
func (r *ImageRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return nil
}
