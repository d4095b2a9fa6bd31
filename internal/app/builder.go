package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/auth/blacklist"
	"github.com/nilesh384/JanSetu-Backend/internal/auth/password"
	"github.com/nilesh384/JanSetu-Backend/internal/auth/token"
	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/config"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/infra/cache/memory"
	redisx "github.com/nilesh384/JanSetu-Backend/internal/infra/cache/redis"
	"github.com/nilesh384/JanSetu-Backend/internal/infra/database/postgres"
	s3storage "github.com/nilesh384/JanSetu-Backend/internal/infra/storage/s3"
	"github.com/nilesh384/JanSetu-Backend/internal/notify"
	"github.com/nilesh384/JanSetu-Backend/internal/priority"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   domain.UsersRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	cacheLog := log.New(base.Writer(), base.Prefix()+"[cache] ", base.Flags())
	scoreLog := log.New(base.Writer(), base.Prefix()+"[priority] ", base.Flags())
	notifyLog := log.New(base.Writer(), base.Prefix()+"[notify] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	scorer := priority.NewScorer(scoreLog, cfg.PriorityWindowDays, cfg.PriorityRadiusMeters)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme, scorer)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3, err := s3storage.New(ctx, s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	// Redis не задан — in-memory кэш (dev/тесты)
	var cacheImpl domain.Cache
	var kv blacklist.KV
	if cfg.RedisAddr != "" {
		base.Println("init Redis")
		rc := redisx.New(redisx.Config{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, redisLog)
		if err := rc.Ping(ctx); err != nil {
			// кэш — оптимизация: стартуем и без него, Redis может подняться позже
			base.Printf("redis ping failed, serving cache misses: %v", err)
		}
		cacheImpl, kv = rc, rc
	} else {
		base.Println("init in-memory cache")
		mc := memory.New()
		cacheImpl, kv = mc, mc
	}

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(kv, "jti:")

	inval := appcache.NewRouter(cacheImpl, cacheLog, time.Duration(cfg.CacheBypassWindow)*time.Second)

	base.Println("init Server")
	rep := web.Repos{Users: pgRepo, Reports: pgRepo, Social: pgRepo, Admins: pgRepo}
	auth := web.AuthDeps{Hasher: hasher, Tokens: tm, Blacklist: bl}
	cd := web.CacheDeps{
		Cache: cacheImpl,
		Keys:  appcache.Keys{},
		Inval: inval,
		TTL: domain.CacheTTL{
			List:   cfg.CacheListTTL,
			Detail: cfg.CacheDetailTTL,
			Stats:  cfg.CacheStatsTTL,
			Social: cfg.CacheSocialTTL,
			Admins: cfg.CacheAdminsTTL,
		},
	}
	server := web.New(serverLog, cfg, rep, auth, s3, cd, notify.NewLog(notifyLog))
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  cacheImpl,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
