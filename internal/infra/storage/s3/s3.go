// Package s3 — MinIO-хранилище медиа обращений (фото/аудио).
// Вызовы best-effort: хендлеры логируют ошибку и продолжают без медиа.
package s3

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	PublicURL string // базовый URL для выдачи наружу (CDN/реверс-прокси)
}

type Storage struct {
	cl        *minio.Client
	bucket    string
	publicURL string
}

func New(_ context.Context, cfg Config) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	pub := strings.TrimSuffix(cfg.PublicURL, "/")
	if pub == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		pub = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, publicURL: pub}, nil
}

// Upload кладёт поток под контент-адресуемым ключом и возвращает
// публичный URL. Сначала во временный ключ (sha ещё неизвестен),
// затем переименование копированием.
func (s *Storage) Upload(ctx context.Context, r io.Reader, hintName, mime string) (string, error) {
	h := sha256.New()
	pr, pw := io.Pipe()
	mw := io.MultiWriter(h, pw)

	go func() {
		_, copyErr := io.Copy(mw, r)
		pw.CloseWithError(copyErr)
	}()

	tmpKey := "tmp/" + sanitize(hintName)
	if _, err := s.cl.PutObject(ctx, s.bucket, tmpKey, pr, -1, minio.PutObjectOptions{
		ContentType: mime,
	}); err != nil {
		return "", err
	}

	ext := path.Ext(hintName)
	finalKey := fmt.Sprintf("media/%x%s", h.Sum(nil), ext)
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: tmpKey}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: finalKey}
	if _, err := s.cl.CopyObject(ctx, dst, src); err != nil {
		_ = s.cl.RemoveObject(ctx, s.bucket, tmpKey, minio.RemoveObjectOptions{})
		return "", err
	}
	_ = s.cl.RemoveObject(ctx, s.bucket, tmpKey, minio.RemoveObjectOptions{})

	return s.publicURL + "/" + finalKey, nil
}

// Delete по публичному URL (обратное отображение url → ключ).
func (s *Storage) Delete(ctx context.Context, mediaURL string) error {
	key := strings.TrimPrefix(mediaURL, s.publicURL+"/")
	if key == "" || key == mediaURL {
		// чужой URL — не наш объект, удалять нечего
		return nil
	}
	return s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.cl.BucketExists(ctx, s.bucket)
	return err
}

func sanitize(name string) string {
	u := url.PathEscape(name)
	return strings.ReplaceAll(u, "%2F", "_")
}
