package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")          // 400
	ErrUnauth           = errors.New("unauthorized")        // 401
	ErrForbidden        = errors.New("forbidden")           // 403
	ErrNotFound         = errors.New("not_found")           // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed")  // 405
	ErrConflict         = errors.New("conflict")            // 409 (повторный резолв, дубль поста)
	ErrUnexpected       = errors.New("unexpected")          // 500
	ErrUnavailable      = errors.New("service_unavailable") // 503 (БД недоступна, можно ретраить)
)
