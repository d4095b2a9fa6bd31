package admins

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/infra/cache/memory"
)

type fakeAdmins struct {
	domain.AdminsRepo
	listCalls int
	list      []domain.Admin
}

func (f *fakeAdmins) AdminsList(context.Context, domain.AdminFilter, domain.Page) ([]domain.Admin, error) {
	f.listCalls++
	return f.list, nil
}

func newHandler(repo domain.AdminsRepo, c domain.Cache, window time.Duration) *Handler {
	inval := appcache.NewRouter(c, nil, window)
	return &Handler{
		Log:    log.New(io.Discard, "", 0),
		Admins: repo,
		Cache:  c,
		Keys:   appcache.Keys{},
		Inval:  inval,
		Policy: inval.Bypass,
		TTL:    domain.CacheTTL{Admins: 300},
	}
}

func TestListCachesSecondRead(t *testing.T) {
	repo := &fakeAdmins{list: []domain.Admin{{Login: "moderator_one", Role: domain.RoleModerator}}}
	h := newHandler(repo, memory.New(), 30*time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admins", nil)

	w := httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.listCalls)
}

// Пока окно обхода открыто, списки читаются из БД и кэш не наполняется:
// роли решают авторизацию, устаревшая запись недопустима.
func TestBypassWindowForcesDBReads(t *testing.T) {
	repo := &fakeAdmins{list: []domain.Admin{{Login: "staff_user", Role: domain.RoleStaff}}}
	mc := memory.New()
	h := newHandler(repo, mc, 30*time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admins", nil)

	// прогрев
	w := httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, 1, repo.listCalls)

	// мутация открывает окно
	h.Inval.AdminChanged(context.Background(), uuid.New())

	w = httptest.NewRecorder()
	h.List(w, req)
	assert.Equal(t, 2, repo.listCalls, "чтение мимо кэша")

	w = httptest.NewRecorder()
	h.List(w, req)
	assert.Equal(t, 3, repo.listCalls, "кэш не наполнился внутри окна")
}
