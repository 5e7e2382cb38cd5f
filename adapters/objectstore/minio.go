// Package objectstore implements the domain ObjectStorage interface on
// MinIO / any S3-compatible store.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// Config holds object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewConfigFromEnv creates a Config from environment variables.
func NewConfigFromEnv() Config {
	ssl := strings.ToLower(os.Getenv("STORAGE_USE_SSL"))
	return Config{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		UseSSL:    ssl == "1" || ssl == "true",
	}
}

// MinioStore is the S3-compatible audio store.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

var _ repositories.ObjectStorage = (*MinioStore)(nil)

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg Config, logger *zap.Logger) (*MinioStore, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("object storage requires STORAGE_ENDPOINT and STORAGE_BUCKET")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	logger.Info("Connected to object storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &MinioStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *MinioStore) Download(ctx context.Context, path string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return data, nil
}

func (s *MinioStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", path, err)
	}
	s.logger.Debug("Stored object", zap.String("path", path), zap.Int("sizeBytes", len(data)))
	return nil
}

// SignedURL produces a time-limited GET URL. Audio is never exposed through
// permanent public URLs.
func (s *MinioStore) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %q: %w", path, err)
	}
	return u.String(), nil
}

func (s *MinioStore) Delete(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
