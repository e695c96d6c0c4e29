package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mcavalcanti/billquest/internal/config"
	"github.com/mcavalcanti/billquest/internal/mockapi"
	"github.com/mcavalcanti/billquest/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.New()
	if err := logger.InitLogger(cfg); err != nil {
		log.Error().Err(err).Msg("Can't init logger")
		return
	}

	srv := mockapi.NewServer()
	server := http.Server{
		Addr:    cfg.MockAPIAddress,
		Handler: srv.Router(),
	}

	var g errgroup.Group
	g.Go(func() error {
		zap.L().Info("starting mock API server", zap.String("address", cfg.MockAPIAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sCtx, sCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer sCancel()
		return server.Shutdown(sCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Fatal("mock API server exited with error", zap.Error(err))
	}
	zap.L().Info("mock API server stopped")
}
