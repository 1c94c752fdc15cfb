package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/modern-notepad/backend/internal/auth/http"
	authservice "github.com/modern-notepad/backend/internal/auth/service"
	"github.com/modern-notepad/backend/internal/common/clock"
	"github.com/modern-notepad/backend/internal/common/config"
	"github.com/modern-notepad/backend/internal/common/constants"
	"github.com/modern-notepad/backend/internal/common/crypto"
	"github.com/modern-notepad/backend/internal/common/db"
	commonhttp "github.com/modern-notepad/backend/internal/common/http"
	"github.com/modern-notepad/backend/internal/common/jwtverify"
	"github.com/modern-notepad/backend/internal/common/logger"
	"github.com/modern-notepad/backend/internal/common/server"
	notehttp "github.com/modern-notepad/backend/internal/note/http"
	noterepository "github.com/modern-notepad/backend/internal/note/repository"
	noteservice "github.com/modern-notepad/backend/internal/note/service"
	userrepository "github.com/modern-notepad/backend/internal/user/repository"
)

const serviceName = "notepad"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog, logErr := logger.New("", serviceName, "info")
		if logErr != nil {
			panic(logErr)
		}
		bootLog.Fatalf("failed to load configuration: %v", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	userRepo := userrepository.NewPgRepository(pool)
	noteRepo := noterepository.NewPgRepository(pool)

	realClock := clock.NewRealClock()
	idGen := crypto.NewUUIDGenerator()

	authSvc := authservice.NewAuthService(
		authservice.AuthServiceDeps{
			Repo:   userRepo,
			Hasher: &crypto.BcryptHasher{},
			IDs:    idGen,
			Clock:  realClock,
			Log:    log,
		},
		authservice.AuthServiceConfig{
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
		},
	)

	noteSvc := noteservice.NewNoteService(noteservice.NoteServiceDeps{
		Repo:  noteRepo,
		IDs:   idGen,
		Clock: realClock,
		Log:   log,
	})

	authHandler := authhttp.NewHandler(authSvc, cfg, log)
	noteHandler := jwtverify.Middleware(cfg.JWTSecret, log)(notehttp.NewHandler(noteSvc, cfg, log))

	limiter := commonhttp.NewStrictRateLimiter()
	limited := func(path string, h http.Handler) http.Handler {
		return limiter.MiddlewareForPath(path)(h)
	}

	mux := http.NewServeMux()
	mux.Handle("/auth/register", limited("/auth/register", authHandler))
	mux.Handle("/auth/login", limited("/auth/login", authHandler))
	mux.Handle("/auth/change-password", limited("/auth/change-password", authHandler))
	mux.Handle("/notes", limited("/notes", noteHandler))
	mux.Handle("/notes/", limited("/notes/", noteHandler))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	handler := commonhttp.BuildBaseHandler(log, mux)

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)

	server.StartWithGracefulShutdownAndHooks(srv, log, serviceName, []server.ShutdownHook{
		func(context.Context) error {
			pool.Close()
			return nil
		},
	})
}
