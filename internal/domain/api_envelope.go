package domain

// Общий конверт ответа: {success, message, data|error}
type APIError struct {
	Code int    `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

type APIEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Утилиты для сборки конвертов
func Ok(msg string, data any) APIEnvelope {
	return APIEnvelope{Success: true, Message: msg, Data: data}
}

func Fail(code int, text string) APIEnvelope {
	return APIEnvelope{Success: false, Message: text, Error: &APIError{Code: code, Text: text}}
}

// Коды ошибок конверта (не HTTP-статусы)
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeConflict         = 1009
	ErrCodeUnexpected       = 1500
	ErrCodeUnavailable      = 1503
)
