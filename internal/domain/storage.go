package domain

import (
	"context"
	"io"
)

// Хранилище медиа обращений (фото/аудио в S3/MinIO).
// Вызовы best-effort: падение загрузки не валит создание обращения,
// уборка за собой — забота самой реализации.
type MediaStorage interface {
	Upload(ctx context.Context, r io.Reader, hintName, mime string) (url string, err error)
	Delete(ctx context.Context, url string) error
	Ping(context.Context) error
}
