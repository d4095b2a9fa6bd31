package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, domain.Fail(domain.ErrCodeUnauth, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.Fail(domain.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.Fail(domain.ErrCodeConflict, "conflict")
	case errors.Is(err, domain.ErrUnavailable):
		// зависимость недоступна; клиенту имеет смысл повторить
		return http.StatusServiceUnavailable, domain.Fail(domain.ErrCodeUnavailable, "temporarily unavailable")
	default:
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(mw.HeaderRequestID, mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOK(w http.ResponseWriter, r *http.Request, msg string, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.Ok(msg, data))
}

func WriteCreated(w http.ResponseWriter, r *http.Request, msg string, data any) {
	WriteEnvelope(w, r, http.StatusCreated, domain.Ok(msg, data))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
