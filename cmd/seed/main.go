package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sweet-solutions/backend/internal/config"
	"github.com/sweet-solutions/backend/internal/repository"
	"github.com/sweet-solutions/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op string
	var n int

	flag.StringVar(&op, "op", "", "operation to run (accounts, employees, shifts, requests, payroll, all)")
	flag.IntVar(&n, "n", 7, "number of records to insert where applicable")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not actually connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	run := func(name string, fn func() error) {
		if err := fn(); err != nil {
			slog.Error("seed operation failed", slog.String("op", name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	switch op {
	case "":
		slog.Error("no operation specified, use -op")
	case "accounts":
		run(op, func() error { return seed.DemoAccounts(repo, cfg) })
	case "employees":
		run(op, func() error { return seed.Employees(repo, n) })
	case "shifts":
		run(op, func() error { return seed.Shifts(repo, n) })
	case "requests":
		run(op, func() error { return seed.Requests(repo, n) })
	case "payroll":
		run(op, func() error { return seed.Payroll(repo) })
	case "all":
		run("accounts", func() error { return seed.DemoAccounts(repo, cfg) })
		run("employees", func() error { return seed.Employees(repo, n) })
		run("shifts", func() error { return seed.Shifts(repo, n*4) })
		run("requests", func() error { return seed.Requests(repo, 5) })
		run("payroll", func() error { return seed.Payroll(repo) })
	default:
		slog.Error("unknown operation", slog.String("op", op))
	}
}
