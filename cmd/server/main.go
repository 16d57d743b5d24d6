// Package main runs the stonks-page backend: it keeps one investor's
// holdings, trades, and profile snapshots fresh from the upstream data
// source, serves the rendered page view-model over HTTP, accepts
// notify-me subscriptions, and publishes newly observed trades to Kafka.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/withlaguna/stonks-page/internal/api"
	"github.com/withlaguna/stonks-page/internal/cache"
	"github.com/withlaguna/stonks-page/internal/config"
	"github.com/withlaguna/stonks-page/internal/notify"
	"github.com/withlaguna/stonks-page/internal/page"
	"github.com/withlaguna/stonks-page/internal/portfolio"
	"github.com/withlaguna/stonks-page/internal/subscription"
	"github.com/withlaguna/stonks-page/internal/upstream"
	"github.com/withlaguna/stonks-page/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	log.Info().Str("subscriber", cfg.Page.Subscriber).Msg("Starting stonks-page server")

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	var snapshots page.Cache
	if cfg.Redis.Enabled {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.TTL)
		defer c.Close()
		if err := c.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, snapshot cache disabled")
		} else {
			snapshots = c
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Snapshot cache enabled")
		}
	}

	var observer page.TradeObserver
	if len(cfg.Kafka.Brokers) > 0 {
		producer := notify.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		observer = notify.NewNotifier(producer, log)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Trade notifications enabled")
	}

	agg := portfolio.NewAggregator(portfolio.RankConfig{
		FilterCurrencyPositions: cfg.Page.FilterCurrencyPositions,
		DefaultSort: portfolio.SortState{
			Column:    portfolio.ParseColumn(cfg.Page.DefaultSortColumn, portfolio.ColumnValue),
			Direction: portfolio.Descending,
		},
	})

	pageSvc := page.NewService(client, snapshots, observer, agg, cfg.Page.Subscriber, log)
	machine := subscription.NewMachine(client, log)
	handler := api.NewHandler(pageSvc, machine, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           api.SetupRoutes(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go pageSvc.StartPolling(ctx, cfg.Page.RefreshInterval)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	log.Info().Str("addr", httpServer.Addr).Msg("Listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
