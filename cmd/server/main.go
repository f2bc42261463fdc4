// @title         resumecompare API
// @version       1.0
// @description   Сервис сравнения двух парсеров резюме: regex и NLP.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/artem13815/resumecompare/docs"

	// internal imports
	"github.com/artem13815/resumecompare/api/http"
	"github.com/artem13815/resumecompare/api/http/handlers"
	"github.com/artem13815/resumecompare/pkg/auth"
	rediscache "github.com/artem13815/resumecompare/pkg/cache/redis"
	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/config"
	"github.com/artem13815/resumecompare/pkg/document"
	"github.com/artem13815/resumecompare/pkg/health"
	"github.com/artem13815/resumecompare/pkg/health/checkers"
	"github.com/artem13815/resumecompare/pkg/logger"
	"github.com/artem13815/resumecompare/pkg/nlp"
	pgrepo "github.com/artem13815/resumecompare/pkg/repository/postgres"
	"github.com/artem13815/resumecompare/pkg/resume/nlpparser"
	"github.com/artem13815/resumecompare/pkg/resume/regexparser"
	"github.com/artem13815/resumecompare/pkg/security/jwt"
	"github.com/artem13815/resumecompare/pkg/storage/postgres"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	skills, err := nlp.LoadSkillDB(cfg.SkillsFile)
	if err != nil {
		zl.Fatal("load skills", zap.Error(err))
	}
	zl.Info("skills loaded", zap.Int("count", skills.Len()))

	opts := []comparison.Option{comparison.WithLogger(zl.Named("comparison"))}
	readinessCheckers := []health.Checker{checkers.NewUploadDirChecker(cfg.UploadDir)}
	h := http.Handlers{}

	// PostgreSQL is optional: without it there are no accounts and no history.
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			zl.Fatal("postgres connect", zap.Error(err))
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			zl.Fatal("postgres migrate", zap.Error(err))
		}

		jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
		authUC := auth.NewAuthService(pgrepo.NewUserRepository(pool), jwtGen, zl.Named("auth"))
		h.Auth = handlers.NewAuthHandler(authUC)

		opts = append(opts, comparison.WithRepository(pgrepo.NewComparisonRepository(pool)))
		readinessCheckers = append(readinessCheckers, checkers.NewPostgresChecker(pool))
	} else {
		zl.Warn("DATABASE_URL is not set: accounts and comparison history are disabled")
	}

	if cfg.RedisURL != "" {
		rdb, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("redis connect", zap.Error(err))
		}
		defer rdb.Close()
		opts = append(opts, comparison.WithCache(rediscache.NewComparisonCache(rdb, cfg.CacheTTL)))
		readinessCheckers = append(readinessCheckers, checkers.NewRedisChecker(rdb))
	}

	cmpCfg := comparison.Config{
		UploadDir:    cfg.UploadDir,
		MaxBytes:     cfg.MaxUploadBytes,
		ParseTimeout: cfg.ParseTimeout,
	}
	svc := comparison.NewService(cmpCfg, document.NewReader(), regexparser.New(), nlpparser.New(skills, zl.Named(nlpparser.Name)), opts...)

	h.Upload = handlers.NewUploadHandler(svc, cfg.MaxUploadBytes)
	h.Web, err = handlers.NewWebHandler(h.Upload)
	if err != nil {
		zl.Fatal("templates", zap.Error(err))
	}
	h.Health = handlers.NewHealthHandler(health.NewService(readinessCheckers...))
	if svc.HistoryEnabled() {
		h.Comparisons = handlers.NewComparisonsHandler(svc)
	}

	app := http.NewApp(http.AppConfig{MaxUploadBytes: cfg.MaxUploadBytes, Logger: zl.Named("http")}, h, http.Middleware{
		OptionalAuth: jwt.NewOptionalAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		RequireAuth:  jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	serve(ctx, zl, app, ":"+cfg.Port)
}

// serve blocks until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, zl *zap.Logger, app *fiber.App, addr string) {
	errCh := make(chan error, 1)
	go func() {
		zl.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zl.Fatal("server stopped", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	zl.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		zl.Error("server shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
