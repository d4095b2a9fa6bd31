package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/nilesh384/JanSetu-Backend/internal/docs"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	adminsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/admins"
	authv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/auth"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/health"
	reportsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/reports"
	socialv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/social"
	statsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/stats"
)

type routerDeps struct {
	auth    mw.AuthDeps
	reports *reportsv1.Handler
	social  *socialv1.Handler
	admins  *adminsv1.Handler
	stats   *statsv1.Handler
	login   *authv1.Handler
	health  *health.Handler
}

func newRouter(d routerDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// три уровня доступа
	public := func(h http.HandlerFunc) http.Handler { return mw.OptionalAuth(d.auth, h) }
	citizen := func(h http.HandlerFunc) http.Handler { return mw.RequireAuth(d.auth, h) }
	admin := func(h http.HandlerFunc, roles ...domain.AdminRole) http.Handler {
		return mw.RequireAdmin(d.auth, h, roles...)
	}

	// health
	mux.HandleFunc("GET /api/v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /api/v1/readyz", d.health.Readiness)

	// обращения
	mux.Handle("POST /api/v1/reports", citizen(limitBody(32<<20, d.reports.Create)))
	mux.Handle("GET /api/v1/reports", public(d.reports.List))
	mux.Handle("GET /api/v1/reports/nearby", public(d.reports.Nearby))
	mux.Handle("GET /api/v1/reports/{id}", public(d.reports.GetOne))
	mux.Handle("PATCH /api/v1/reports/{id}", citizen(d.reports.Update))
	mux.Handle("DELETE /api/v1/reports/{id}", citizen(d.reports.Delete))
	mux.Handle("POST /api/v1/reports/{id}/resolve", admin(d.reports.Resolve))
	mux.Handle("POST /api/v1/reports/{id}/assign", admin(d.reports.Assign))
	mux.Handle("GET /api/v1/admin/reports", admin(d.reports.AdminList))

	// соц-лента
	mux.Handle("GET /api/v1/social/posts", public(d.social.List))
	mux.Handle("POST /api/v1/social/posts/{id}/vote", citizen(d.social.Vote))
	mux.Handle("POST /api/v1/social/posts/{id}/view", public(d.social.View))
	mux.Handle("GET /api/v1/social/posts/{id}/comments", public(d.social.Comments))
	mux.Handle("POST /api/v1/social/posts/{id}/comments", citizen(d.social.AddComment))

	// статистика
	mux.Handle("GET /api/v1/stats/community", public(d.stats.Community))

	// управление админами; мутации — только superadmin
	mux.Handle("GET /api/v1/admins", admin(d.admins.List))
	mux.Handle("GET /api/v1/admins/{id}", admin(d.admins.GetOne))
	mux.Handle("POST /api/v1/admins", admin(d.admins.Create, domain.RoleSuperAdmin))
	mux.Handle("PATCH /api/v1/admins/{id}", admin(d.admins.Update, domain.RoleSuperAdmin))
	mux.Handle("DELETE /api/v1/admins/{id}", admin(d.admins.Delete, domain.RoleSuperAdmin))
	mux.Handle("POST /api/v1/admins/{id}/restore", admin(d.admins.Restore, domain.RoleSuperAdmin))

	// auth
	mux.HandleFunc("POST /api/v1/auth/login", d.login.Login)
	mux.HandleFunc("DELETE /api/v1/auth/logout", d.login.Logout)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
