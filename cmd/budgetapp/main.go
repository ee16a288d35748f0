package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"max.ks1230/budget-app/internal/clients/console"
	"max.ks1230/budget-app/internal/config"
	"max.ks1230/budget-app/internal/logger"
	"max.ks1230/budget-app/internal/model/auth"
	"max.ks1230/budget-app/internal/model/ledger"
	"max.ks1230/budget-app/internal/model/session"
	"max.ks1230/budget-app/internal/model/storage"
	"max.ks1230/budget-app/internal/tracing"
)

func main() {
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	if conf.Tracing().Enabled() {
		closer, err := tracing.Init(conf.Tracing())
		if err != nil {
			logger.Fatal("failed to init tracing:", zap.Error(err))
		}
		defer func() {
			_ = closer.Close()
		}()
	}

	store, err := storage.New(conf.Storage())
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	client := console.New(os.Stdin, os.Stdout)
	authService := auth.NewService(store, client)
	ledgerManager := ledger.NewManager(store, ledger.SystemClock{}, client)
	sessionService := session.NewService(authService, ledgerManager, client, conf.App())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = client.Run(ctx, sessionService); err != nil {
		logger.Error("console loop failed:", zap.Error(err))
	}
}
