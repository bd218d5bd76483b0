package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grocery-platform/internal/auth"
	"grocery-platform/internal/authz"
	"grocery-platform/internal/config"
	"grocery-platform/internal/grocery"
	"grocery-platform/internal/httpapi"
	"grocery-platform/internal/users"
	"grocery-platform/pkg/logger"
	"grocery-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local development convenience; absence of .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	codec, err := auth.NewCodec(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	var (
		userStore    users.Store
		groceryStore grocery.Store
		index        authz.OwnershipIndex
		assigner     users.ResponsibilityAssigner
		directory    users.Directory
	)
	if cfg.UsePostgres() {
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		us := users.NewPostgresStore(db)
		gs := grocery.NewPostgresStore(db)
		userStore, groceryStore, index, assigner = us, gs, gs, gs
		directory = users.NewDirectory(us)
	} else {
		log.Warn("using in-memory store; data is lost on restart")
		us := users.NewMemoryStore()
		directory = users.NewDirectory(us)
		gs := grocery.NewMemoryStore(directory)
		userStore, groceryStore, index, assigner = us, gs, gs, gs
	}

	var rdb *redis.Client
	if cfg.UseRedis() {
		rdb, err = utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
	} else {
		log.Warn("redis not configured; login throttling disabled")
	}

	authSvc := auth.NewService(codec, directory, cfg.Auth)
	userSvc := users.NewService(userStore, assigner)
	grocerySvc := grocery.NewService(groceryStore)
	engine := authz.NewEngine(index)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := &httpapi.Handlers{Auth: authSvc, Users: userSvc, Grocery: grocerySvc}
	httpapi.Register(r, h, codec, engine, httpapi.LoginThrottle(rdb))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
