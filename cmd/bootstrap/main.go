package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"grocery-platform/internal/config"
	"grocery-platform/internal/grocery"
	"grocery-platform/internal/users"
	"grocery-platform/pkg/logger"
	"grocery-platform/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// Seeds (or resets) the admin account. Safe to re-run: the account is
// keyed by email.
func main() {
	var (
		name     = flag.String("name", "Super Admin", "admin display name")
		email    = flag.String("email", "", "admin email (required)")
		password = flag.String("password", "", "admin password (required)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if *email == "" || *password == "" {
		log.Error("both -email and -password are required")
		os.Exit(2)
	}
	if !cfg.UsePostgres() {
		log.Error("bootstrap requires the postgres backend; memory stores do not survive the process")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := users.NewService(users.NewPostgresStore(db), grocery.NewPostgresStore(db))

	u, created, err := svc.UpsertAdmin(ctx, *name, *email, *password)
	if err != nil {
		log.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("admin created", "uid", u.UID, "email", u.Email)
	} else {
		log.Info("admin updated", "uid", u.UID, "email", u.Email)
	}
}
