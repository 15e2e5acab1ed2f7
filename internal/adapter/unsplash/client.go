// internal/adapter/unsplash/client.go
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/randimg/internal/config"
	"github.com/GoArmGo/randimg/internal/domain"
)

const randomPhotoPath = "/photos/random"

// UnsplashAPIClient представляет клиент для взаимодействия с Unsplash API.
type UnsplashAPIClient struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	logger     *slog.Logger
}

// NewUnsplashAPIClient создает новый экземпляр UnsplashAPIClient.
// Адрес и ключ не проверяются: при неверных значениях упадет сам запрос.
func NewUnsplashAPIClient(cfg *config.Config, logger *slog.Logger) *UnsplashAPIClient {
	return &UnsplashAPIClient{
		httpClient: &http.Client{Timeout: cfg.UnsplashTimeout},
		baseURL:    strings.TrimRight(cfg.UnsplashAPIURL, "/"),
		accessKey:  cfg.UnsplashAccessKey,
		logger:     logger,
	}
}

// FetchRandomImage получает одно случайное фото: GET <base>/photos/random.
func (c *UnsplashAPIClient) FetchRandomImage(ctx context.Context) (*domain.ImageRecord, error) {
	start := time.Now()
	endpoint := c.baseURL + randomPhotoPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("unsplash request failed", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("ошибка выполнения HTTP-запроса к Unsplash: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Warn("unsplash returned non-success status",
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("unsplash API вернул статус %d: %s", resp.StatusCode, errorMessage(bodyBytes))
	}

	var photo UnsplashPhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&photo); err != nil {
		return nil, fmt.Errorf("%w: ошибка декодирования JSON ответа Unsplash: %v", domain.ErrInvalidImage, err)
	}

	record := mapPhotoToRecord(&photo)
	if err := record.Validate(); err != nil {
		c.logger.Warn("unsplash returned malformed photo", "id", photo.ID, "error", err)
		return nil, err
	}

	c.logger.Info("random photo fetched",
		"id", record.ID,
		"slug", record.AlternativeSlugs.En,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// mapPhotoToRecord преобразует UnsplashPhotoResponse в domain.ImageRecord.
func mapPhotoToRecord(photo *UnsplashPhotoResponse) *domain.ImageRecord {
	record := &domain.ImageRecord{
		ID: photo.ID,
		URLs: domain.ImageURLs{
			Full:    photo.URLs.Full,
			Regular: photo.URLs.Regular,
		},
		Links: domain.ImageLinks{
			Download: photo.Links.Download,
		},
		AlternativeSlugs: domain.AlternativeSlugs{
			En: photo.AlternativeSlugs["en"],
		},
	}
	if photo.AltDescription != nil {
		record.AltDescription = *photo.AltDescription
	}
	return record
}

// errorMessage достает текст ошибки из тела ответа Unsplash ({"errors": [...]}),
// иначе возвращает тело как есть
func errorMessage(body []byte) string {
	var apiErr UnsplashErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Errors) > 0 {
		return strings.Join(apiErr.Errors, "; ")
	}
	return strings.TrimSpace(string(body))
}
