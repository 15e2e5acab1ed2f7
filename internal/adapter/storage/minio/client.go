// internal/adapter/storage/minio/client.go
package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/GoArmGo/randimg/internal/config"
)

const (
	defaultS3Region    = "us-east-1"
	bucketSetupTimeout = 30 * time.Second
)

// Client представляет собой клиент для взаимодействия с MinIO (S3-совместимым хранилищем).
// Используется как хранилище для скачанных изображений при DOWNLOAD_SINK=s3.
type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	httpClient *http.Client
	bucketName string
	prefix     string
	publicURL  string
	logger     *slog.Logger
}

// NewMinioClient создает и инициализирует новый MinIO Client, используя переданную конфигурацию.
func NewMinioClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	if cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" || cfg.MinioBucketName == "" || cfg.MinioEndpoint == "" || cfg.MinioRegion == "" {
		return nil, fmt.Errorf("MinIO credentials (MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_ENDPOINT, MINIO_REGION) must be set when DOWNLOAD_SINK=s3")
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)

	ctx, cancel := context.WithTimeout(context.Background(), bucketSetupTimeout)
	defer cancel()

	cfgAws, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.MinioRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.MinioAccessKeyID, cfg.MinioSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(cfgAws, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})

	publicURL := strings.TrimRight(cfg.MinioPublicURL, "/")
	if publicURL == "" {
		publicURL = endpointURL
	}

	c := &Client{
		s3Client:   s3Client,
		uploader:   manager.NewUploader(s3Client),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		bucketName: cfg.MinioBucketName,
		prefix:     cfg.DownloadPrefix,
		publicURL:  publicURL,
		logger:     logger,
	}

	if err := c.ensureBucket(ctx, cfg.MinioRegion); err != nil {
		return nil, err
	}
	return c, nil
}

// ensureBucket проверяет существование бакета и создает его при необходимости
func (c *Client) ensureBucket(ctx context.Context, region string) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := c.s3Client.HeadBucket(headCtx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	})
	cancel()
	if err == nil {
		c.logger.Info("bucket already exists", "bucket", c.bucketName)
		return nil
	}

	c.logger.Warn("bucket not found, creating", "bucket", c.bucketName)

	_, err = c.s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket:                    aws.String(c.bucketName),
		CreateBucketConfiguration: bucketConfiguration(region),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.bucketName, err)
	}

	// Ждем пока бакет станет доступен
	waiter := s3.NewBucketExistsWaiter(c.s3Client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}, bucketSetupTimeout); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s' to be created: %w", c.bucketName, err)
	}

	c.logger.Info("bucket created successfully", "bucket", c.bucketName)
	return nil
}

// bucketConfiguration возвращает LocationConstraint для региона.
// us-east-1 задается без него: S3 отклоняет явное указание этого региона.
func bucketConfiguration(region string) *types.CreateBucketConfiguration {
	if region == "" || region == defaultS3Region {
		return nil
	}
	return &types.CreateBucketConfiguration{
		LocationConstraint: types.BucketLocationConstraint(region),
	}
}

// Save скачивает sourceURL и загружает его в бакет под ключом <prefix><fileName>.
// Возвращает публичный URL объекта.
func (c *Client) Save(ctx context.Context, sourceURL, fileName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", sourceURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return c.UploadFile(ctx, c.prefix+fileName, resp.Body, contentType)
}

// UploadFile загружает файл в бакет MinIO и возвращает его URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	start := time.Now()

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(c.bucketName),
		Key:                aws.String(objectKey),
		Body:               fileContent,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", objectName(objectKey))),
	})
	if err != nil {
		c.logger.Error("failed to upload file", "key", objectKey, "bucket", c.bucketName, "error", err)
		return "", fmt.Errorf("failed to upload file %s to bucket %s using multipart upload: %w", objectKey, c.bucketName, err)
	}

	c.logger.Info("file uploaded",
		"key", objectKey,
		"bucket", c.bucketName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ObjectURL(c.publicURL, c.bucketName, objectKey), nil
}

// ObjectURL собирает path-style URL объекта
func ObjectURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.TrimLeft(key, "/"))
}

func objectName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
