// Package main is the entrypoint for the admin console gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/panelworks/admin-console/internal/api"
	"github.com/panelworks/admin-console/internal/core/ports"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
	"github.com/panelworks/admin-console/internal/infrastructure/backend"
	"github.com/panelworks/admin-console/internal/infrastructure/config"
	"github.com/panelworks/admin-console/internal/infrastructure/tokenstore"
	"github.com/panelworks/admin-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Token storage: file by default, Redis when an address is configured.
	var tokens ports.TokenStore
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = tokenstore.Connect(ctx, tokenstore.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connecting to redis failed")
		}
		defer rdb.Close()
		tokens = tokenstore.NewRedis(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis token store")
	} else {
		tokens = tokenstore.NewFile(cfg.Token.Path)
	}

	client := backend.New(cfg.Backend.BaseURL, tokens, log, backend.WithTimeout(cfg.Backend.Timeout))

	authStore := store.NewAuthStore(client.Auth(), log)
	adminStore := store.NewAdminStore(client.Users(), client.Roles(), log)
	client.OnSessionExpired(authStore.Expire)

	queries := query.New(cfg.Cache.TTL)

	e := api.NewRouter(api.Deps{
		Auth:    authStore,
		Admin:   adminStore,
		Perms:   client.Permissions(),
		Backend: client,
		Queries: queries,
		Redis:   rdb,
		Log:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("starting console gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
