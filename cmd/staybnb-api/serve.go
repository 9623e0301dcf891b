package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"github.com/staybnb-project/backend/internal/cache"
	"github.com/staybnb-project/backend/internal/controllers"
	"github.com/staybnb-project/backend/internal/database"
	"github.com/staybnb-project/backend/internal/faq"
	"github.com/staybnb-project/backend/internal/geocode"
	"github.com/staybnb-project/backend/internal/listing"
	"github.com/staybnb-project/backend/internal/router"
	"github.com/staybnb-project/backend/internal/session"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve the http api",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "http-listen-address",
			Value:   "127.0.0.1:3009",
			EnvVars: env("HTTP_LISTEN_ADDRESS"),
		},
		postgresURIFlag,
		&cli.BoolFlag{
			Name:    "auto-migrate",
			EnvVars: env("AUTO_MIGRATE"),
		},
		&cli.StringFlag{
			Name:    "session-public-key",
			Usage:   "base64 encoded PASETO v4 public key",
			EnvVars: env("SESSION_PUBLIC_KEY"),
		},
		&cli.StringFlag{
			Name:    "kakao-api-key",
			EnvVars: append(env("KAKAO_API_KEY"), "KAKAO_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:    "kakao-base-url",
			Value:   geocode.DefaultKakaoBaseURL,
			EnvVars: env("KAKAO_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:    "geocode-timeout",
			Value:   5 * time.Second,
			EnvVars: env("GEOCODE_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			EnvVars: env("REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:    "redis-password",
			EnvVars: env("REDIS_PASSWORD"),
		},
		&cli.IntFlag{
			Name:    "redis-db",
			EnvVars: env("REDIS_DB"),
		},
		&cli.DurationFlag{
			Name:    "faq-cache-ttl",
			Value:   10 * time.Minute,
			EnvVars: env("FAQ_CACHE_TTL"),
		},
		&cli.StringSliceFlag{
			Name:    "cors-allowed-origin",
			EnvVars: env("CORS_ALLOWED_ORIGIN"),
		},
		&cli.BoolFlag{
			Name:    "legacy-list-all",
			Usage:   "return every room when no read parameter is given",
			Value:   true,
			EnvVars: env("LEGACY_LIST_ALL"),
		},
		&cli.IntFlag{
			Name:    "max-page-size",
			Value:   100,
			EnvVars: env("MAX_PAGE_SIZE"),
		},
	},
	Action: serveEntrypoint,
}

func serveEntrypoint(cctx *cli.Context) (err error) {
	ctx := cctx.Context
	defer func() { _ = zap.L().Sync() }()

	db, err := database.Open(ctx, database.Options{
		URI:   cctx.String("postgres-uri"),
		Debug: cctx.Bool("debug"),
	})
	if err != nil {
		return
	}
	defer func() { _ = db.Close() }()

	if cctx.Bool("auto-migrate") {
		if err = database.Migrate(db, "up"); err != nil {
			return
		}
	}

	var resolver *session.Resolver
	if key := cctx.String("session-public-key"); key != "" {
		if resolver, err = session.NewResolverFromBase64(key); err != nil {
			err = fmt.Errorf("unable to load session public key: %w", err)
			return
		}
	} else {
		zap.L().Warn("no session public key configured, every request is anonymous")
	}

	if cctx.String("kakao-api-key") == "" {
		zap.L().Warn("no kakao api key configured, room writes will fail to geocode")
	}
	geocoder := geocode.NewKakaoClient(geocode.KakaoOptions{
		BaseURL: cctx.String("kakao-base-url"),
		APIKey:  cctx.String("kakao-api-key"),
		Timeout: cctx.Duration("geocode-timeout"),
	})

	rooms := listing.NewService(database.NewRoomStore(db), geocoder, listing.ReadOptions{
		MaxLimit:      cctx.Int("max-page-size"),
		LegacyListAll: cctx.Bool("legacy-list-all"),
	})

	var kv cache.KV
	if addr := cctx.String("redis-addr"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cctx.String("redis-password"),
			DB:       cctx.Int("redis-db"),
		})
		defer func() { _ = rdb.Close() }()

		if perr := rdb.Ping(ctx).Err(); perr != nil {
			zap.L().Warn("redis is not reachable, faq cache may miss", zap.String("addr", addr), zap.Error(perr))
		}
		kv = cache.NewRedisKV(rdb)
	}
	faqs := faq.NewService(database.NewFaqStore(db), kv, cctx.Duration("faq-cache-ttl"))

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	})
	r.Use(router.RequestID, resolver.Middleware)

	if cctx.Bool("debug") {
		(&controllers.DebugController{DB: db}).Register(r)
	}
	router.RegisterAll(r,
		&controllers.HealthController{DB: db},
		&controllers.RoomController{Service: rooms},
		&controllers.FaqController{Service: faqs},
		&controllers.CatalogController{},
	)

	accessLog := &zapio.Writer{Log: zap.L().With(zap.String("section", "http")), Level: zapcore.InfoLevel}
	defer func() { _ = accessLog.Close() }()

	var handler http.Handler = r
	handler = handlers.CombinedLoggingHandler(accessLog, handler)
	if origins := cctx.StringSlice("cors-allowed-origin"); len(origins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", router.RequestIDHeader}),
			handlers.AllowCredentials(),
		)(handler)
	}
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(zap.L().With(zap.String("section", "recovery")))),
	)(handler)

	srv := &http.Server{
		Addr:         cctx.String("http-listen-address"),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serverDone := make(chan interface{})
	go func() {
		zap.L().Info("serving requests", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("failed to listen for http requests", zap.Error(err))
		}
		close(serverDone)
	}()

	select {
	case <-serverDone:
	case <-ctx.Done():
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			err = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}

	return
}
