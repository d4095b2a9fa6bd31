package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/infra/cache/memory"
)

type fakeReports struct {
	domain.ReportsRepo
	listCalls int
	list      []domain.Report
	listErr   error
	resolved  domain.Report
}

func (f *fakeReports) ReportsList(context.Context, domain.ReportFilter, domain.Page) ([]domain.Report, error) {
	f.listCalls++
	return f.list, f.listErr
}

func (f *fakeReports) ResolveReport(context.Context, domain.ReportID, domain.AdminID) (domain.Report, error) {
	return f.resolved, nil
}

// brokenCache имитирует лежащий Redis: всегда промах, записи в никуда.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool)    { return nil, false }
func (brokenCache) Set(context.Context, string, []byte, int)      {}
func (brokenCache) Del(context.Context, ...string)                {}
func (brokenCache) DelPattern(context.Context, string)            {}
func (brokenCache) Ping(context.Context) error                    { return errors.New("down") }
func (brokenCache) Close()                                        {}

func newHandler(repo domain.ReportsRepo, c domain.Cache) *Handler {
	return &Handler{
		Log:     log.New(io.Discard, "", 0),
		Reports: repo,
		Cache:   c,
		Keys:    appcache.Keys{},
		Inval:   appcache.NewRouter(c, nil, 30*time.Second),
		TTL:     domain.CacheTTL{List: 300, Detail: 600},
	}
}

func decodeEnvelope(t *testing.T, body io.Reader) domain.APIEnvelope {
	t.Helper()
	var env domain.APIEnvelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestListCachesSecondRead(t *testing.T) {
	repo := &fakeReports{list: []domain.Report{{ID: uuid.New(), Title: "pothole on main road"}}}
	h := newHandler(repo, memory.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports?tab=open", nil)

	w1 := httptest.NewRecorder()
	h.List(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "MISS", w1.Header().Get("X-Cache"))

	w2 := httptest.NewRecorder()
	h.List(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "HIT", w2.Header().Get("X-Cache"))
	assert.Equal(t, 1, repo.listCalls, "второе чтение — из кэша")

	env := decodeEnvelope(t, w2.Body)
	assert.True(t, env.Success)
}

func TestListSurvivesCacheOutage(t *testing.T) {
	repo := &fakeReports{list: []domain.Report{{ID: uuid.New()}}}
	h := newHandler(repo, brokenCache{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.List(w, req)
		require.Equal(t, http.StatusOK, w.Code, "лежащий кэш не ломает чтения")
	}
	assert.Equal(t, 3, repo.listCalls, "каждый запрос идёт в БД")
}

func TestListMineRequiresAuth(t *testing.T) {
	h := newHandler(&fakeReports{}, memory.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports?tab=mine", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w.Body)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeUnauth, env.Error.Code)
}

func TestListDBErrorMapped(t *testing.T) {
	h := newHandler(&fakeReports{listErr: domain.ErrUnavailable}, memory.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// Резолв чистит кэш после коммита: закэшированный список перестаёт
// отдаваться, следующий запрос видит свежие данные.
func TestResolvePurgesCachedLists(t *testing.T) {
	owner := uuid.New()
	repID := uuid.New()
	repo := &fakeReports{
		list:     []domain.Report{{ID: repID, UserID: owner, Title: "open pothole"}},
		resolved: domain.Report{ID: repID, UserID: owner, Title: "open pothole", IsResolved: true},
	}
	mc := memory.New()
	h := newHandler(repo, mc)
	h.Notify = noopNotifier{}

	// прогреваем кэш списка
	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()
	h.List(w, listReq)
	require.Equal(t, 1, repo.listCalls)

	w = httptest.NewRecorder()
	h.List(w, listReq)
	require.Equal(t, 1, repo.listCalls, "список в кэше")

	// резолвим от имени админа
	admin := domain.Admin{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}
	resReq := httptest.NewRequest(http.MethodPost, "/api/v1/reports/"+repID.String()+"/resolve", nil)
	resReq.SetPathValue("id", repID.String())
	resReq = resReq.WithContext(domain.WithAdmin(resReq.Context(), admin))

	w = httptest.NewRecorder()
	h.Resolve(w, resReq)
	require.Equal(t, http.StatusOK, w.Code)

	// кэш списка вычищен — чтение снова идёт в БД
	w = httptest.NewRecorder()
	h.List(w, listReq)
	assert.Equal(t, 2, repo.listCalls)
}

// Публичная выдача не зависит от читателя: гость прогревает кэш,
// авторизованный получает ту же запись без похода в БД.
func TestListSharedBetweenGuestAndAuthedReader(t *testing.T) {
	repo := &fakeReports{list: []domain.Report{{ID: uuid.New(), Title: "broken streetlight"}}}
	h := newHandler(repo, memory.New())

	guestReq := httptest.NewRequest(http.MethodGet, "/api/v1/reports?tab=all", nil)
	w := httptest.NewRecorder()
	h.List(w, guestReq)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	me := domain.User{ID: uuid.New(), Phone: "+911234567890"}
	authedReq := httptest.NewRequest(http.MethodGet, "/api/v1/reports?tab=all", nil)
	authedReq = authedReq.WithContext(domain.WithUser(authedReq.Context(), me))

	w = httptest.NewRecorder()
	h.List(w, authedReq)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, repo.listCalls, "гость и авторизованный делят запись")
}

// Чистка кэша идёт после коммита и не влияет на судьбу мутации:
// лежащий Redis не превращает успешный резолв в ошибку.
func TestResolveSurvivesCacheOutage(t *testing.T) {
	owner := uuid.New()
	repID := uuid.New()
	repo := &fakeReports{
		resolved: domain.Report{ID: repID, UserID: owner, Title: "open pothole", IsResolved: true},
	}
	h := newHandler(repo, brokenCache{})
	h.Notify = noopNotifier{}

	admin := domain.Admin{ID: uuid.New(), Role: domain.RoleModerator, IsActive: true}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/"+repID.String()+"/resolve", nil)
	req.SetPathValue("id", repID.String())
	req = req.WithContext(domain.WithAdmin(req.Context(), admin))

	w := httptest.NewRecorder()
	h.Resolve(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body)
	assert.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["is_resolved"])
}

type noopNotifier struct{}

func (noopNotifier) NotifyResolved(context.Context, domain.UserID, domain.ReportID, string) {}
