package v1

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// PageFromQuery читает limit/offset; мусор молча заменяется дефолтами.
func PageFromQuery(r *http.Request) domain.Page {
	q := r.URL.Query()
	p := domain.Page{}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil {
		p.Offset = n
	}
	return p.Norm()
}

// PathUUID парсит path-параметр {id}
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.ErrBadParams
	}
	return id, nil
}

// BoolQuery: "true"/"false" → указатель, остальное (включая пусто) — nil
func BoolQuery(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func FloatQuery(r *http.Request, name string) (float64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
