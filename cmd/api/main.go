package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/bryanwahyu/lexguard/internal/application"
	appai "github.com/bryanwahyu/lexguard/internal/application/ai"
	appanalysis "github.com/bryanwahyu/lexguard/internal/application/analysis"
	appchat "github.com/bryanwahyu/lexguard/internal/application/chat"
	"github.com/bryanwahyu/lexguard/internal/application/session"
	"github.com/bryanwahyu/lexguard/internal/config"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/chat"
	"github.com/bryanwahyu/lexguard/internal/infra/ai/backend"
	"github.com/bryanwahyu/lexguard/internal/infra/ai/heuristic"
	openaiclient "github.com/bryanwahyu/lexguard/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/lexguard/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/lexguard/internal/infra/db/postgres"
	sqlitep "github.com/bryanwahyu/lexguard/internal/infra/db/sqlite"
	"github.com/bryanwahyu/lexguard/internal/infra/extract"
	"github.com/bryanwahyu/lexguard/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/lexguard/internal/infra/storage"
	"github.com/bryanwahyu/lexguard/internal/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// .env opsional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fatal("config load error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkers := map[string]middleware.HealthChecker{}

	// history repo
	history, closeDB, err := openHistory(ctx, cfg, checkers)
	if err != nil {
		fatal("database init error", err)
	}
	defer closeDB()

	// init minio
	var documents analysis.DocumentStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
			cfg.Minio.Presign,
		)
		if err != nil {
			fatal("minio init error", err)
		}
		documents = store
		checkers["storage"] = middleware.CheckerFunc(store.Ping)
	}

	// AI provider
	analyzer, responder, aiSvc := newAI(cfg)

	analysisSvc := &appanalysis.Service{
		Analyzer:  analyzer,
		Extractor: extract.New(),
		Documents: documents,
		History:   history,
		Clock:     application.SystemClock{},
	}

	sessions := session.NewManager(responder, application.SystemClock{}, cfg.Sessions.TTL, cfg.Chat.Timeout)
	go sessions.Run(ctx, cfg.Sessions.SweepInterval)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate)
	go limiter.Run(ctx, 5*time.Minute, 10*time.Minute)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
	mux.Use(middleware.RateLimit(limiter))
	mux.Mount("/", httpserver.NewRouter(httpserver.Deps{
		Sessions:       sessions,
		Analysis:       analysisSvc,
		AI:             aiSvc,
		Greeting:       cfg.Chat.Greeting,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		HealthCheckers: checkers,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	go func() {
		slog.Info("server listening", "addr", addr, "ai_provider", cfg.AI.Provider, "database", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("server error", err)
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	slog.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newAI memilih analyzer, responder dan generator sesuai ai.provider.
// Mode offline tidak punya generator, jadi /api/generate dan translate mati.
func newAI(cfg *config.Config) (analysis.Analyzer, chat.Responder, *appai.Service) {
	switch cfg.AI.Provider {
	case "openai":
		client := openaiclient.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout)
		return client, appchat.GeneratorResponder{Generator: client}, appai.NewService(client)
	case "backend":
		client := backend.NewClient(cfg.AI.BackendURL, cfg.AI.Timeout)
		return client, appchat.GeneratorResponder{Generator: client}, appai.NewService(client)
	default:
		return heuristic.New(), appchat.CannedResponder{}, nil
	}
}

type migrator interface {
	Migrate(ctx context.Context) error
}

func openHistory(ctx context.Context, cfg *config.Config, checkers map[string]middleware.HealthChecker) (analysis.Repository, func(), error) {
	var (
		db   *sql.DB
		repo analysis.Repository
		err  error
	)
	switch cfg.Database.Driver {
	case "none":
		return nil, func() {}, nil
	case "sqlite":
		r, err := sqlitep.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: r.DB()}
		return r, func() { r.Close() }, nil
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err == nil {
			repo = mysqlp.NewAnalysisRepository(db)
		}
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err == nil {
			repo = postgresp.NewAnalysisRepository(db)
		}
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if m, ok := repo.(migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	return repo, func() { db.Close() }, nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
