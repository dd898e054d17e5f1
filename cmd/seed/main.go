package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/internal/application"
	pginfra "github.com/mikeodnis/core-service/internal/infrastructure/postgres"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

var demoUsers = []application.CreateUserInput{
	{Email: "ada@example.com", Name: "Ada Lovelace"},
	{Email: "grace@example.com", Name: "Grace Hopper"},
	{Email: "linus@example.com", Name: "Linus Torvalds"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.DatabaseURL, MaxConns: 2, ConnectTimeout: cfg.DBConnectTimeout})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	svc := application.NewService(pginfra.NewUserRepository(pool), nil, logger)
	for _, in := range demoUsers {
		u, err := svc.Create(ctx, in)
		if errors.Is(err, application.ErrEmailTaken) {
			fmt.Printf("skipped existing user: email=%s\n", in.Email)
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", in.Email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)
	}
}
