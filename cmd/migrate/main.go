// cmd/migrate/main.go
package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"hw-quote/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	dir := flag.String("dir", "", "migrations directory (default ./migrations)")
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.MustLoad()

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationsDir := *dir
	if migrationsDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			slog.Error("Не удалось получить рабочую директорию", "error", err)
			os.Exit(1)
		}
		migrationsDir = filepath.Join(wd, "migrations")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("goose dialect", "error", err)
		os.Exit(1)
	}

	slog.Info("Применяем миграции", "dir", migrationsDir, "command", command)

	if err := goose.Run(command, db, migrationsDir, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		slog.Error("Миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}

	slog.Info("✅ Миграции применены")
}
