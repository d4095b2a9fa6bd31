package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/config"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	adminsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/admins"
	authv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/auth"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/health"
	reportsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/reports"
	socialv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/social"
	statsv1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1/stats"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, rep Repos, auth AuthDeps,
	storage domain.MediaStorage, cd CacheDeps, notifier domain.Notifier) *Server {

	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	reportsHandler := &reportsv1.Handler{
		Log: sub("reports"), Reports: rep.Reports, Storage: storage,
		Cache: cd.Cache, Keys: cd.Keys, Inval: cd.Inval, Notify: notifier, TTL: cd.TTL,
	}
	socialHandler := &socialv1.Handler{
		Log: sub("social"), Social: rep.Social,
		Cache: cd.Cache, Keys: cd.Keys, Inval: cd.Inval, TTL: cd.TTL,
	}
	adminsHandler := &adminsv1.Handler{
		Log: sub("admins"), Admins: rep.Admins, Hasher: auth.Hasher,
		Cache: cd.Cache, Keys: cd.Keys, Inval: cd.Inval, Policy: cd.Inval.Bypass, TTL: cd.TTL,
	}
	statsHandler := &statsv1.Handler{
		Log: sub("stats"), Reports: rep.Reports,
		Cache: cd.Cache, Keys: cd.Keys, TTL: cd.TTL,
	}
	authHandler := &authv1.Handler{
		Log: sub("auth"), Admins: rep.Admins, Hasher: auth.Hasher,
		Tokens: auth.Tokens, Blacklist: auth.Blacklist,
	}
	healthHandler := &health.Handler{
		Log: sub("health"), DB: rep.Users, Cache: cd.Cache, Storage: storage,
	}

	authMW := mw.AuthDeps{Tokens: auth.Tokens, Blacklist: auth.Blacklist, Admins: rep.Admins}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			auth:    authMW,
			reports: reportsHandler,
			social:  socialHandler,
			admins:  adminsHandler,
			stats:   statsHandler,
			login:   authHandler,
			health:  healthHandler,
		}, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
