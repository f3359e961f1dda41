package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config параметры S3-совместимого хранилища
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
	URLExpiry time.Duration
}

// Sink загружает документы в бакет и выдает на них presigned ссылки
type Sink struct {
	client *minio.Client
	cfg    Config
}

// New создает клиент хранилища. Регион задается явно, чтобы клиент не запрашивал его у сервера.
func New(cfg Config) (*Sink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3.New: create client for %s: %w", cfg.Endpoint, err)
	}
	return &Sink{client: client, cfg: cfg}, nil
}

// EnsureBucket проверяет, что бакет существует
func (s *Sink) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("s3.EnsureBucket: %w", err)
	}
	if !ok {
		return fmt.Errorf("s3.EnsureBucket: bucket %q does not exist", s.cfg.Bucket)
	}
	return nil
}

// Upload кладет документ под ключом prefix/name и возвращает ссылку на скачивание
func (s *Sink) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := s.objectKey(name)

	r := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, int64(r.Len()), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3.Upload: put object %s: %w", key, err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.URLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("s3.Upload: presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *Sink) objectKey(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return path.Join(s.cfg.Prefix, name)
}
