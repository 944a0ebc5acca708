package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/config"
	"github.com/linggafajar/sarpras/internal/events"
	"github.com/linggafajar/sarpras/internal/form"
	"github.com/linggafajar/sarpras/internal/handler"
	"github.com/linggafajar/sarpras/internal/history"
	"github.com/linggafajar/sarpras/internal/notification"
	"github.com/linggafajar/sarpras/internal/server"
	"github.com/linggafajar/sarpras/internal/service/barang"
	"github.com/linggafajar/sarpras/internal/service/peminjaman"
	"github.com/linggafajar/sarpras/internal/session"
	"github.com/linggafajar/sarpras/migrations"
	"github.com/linggafajar/sarpras/pkg/kafka"
	"github.com/linggafajar/sarpras/pkg/logger"
	"github.com/linggafajar/sarpras/pkg/postgres"
)

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "sarpras")

	var (
		journal     form.Journal
		historyRepo handler.HistoryRepository
	)
	if cfg.Database.Host != "" {
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return fmt.Errorf("db init %v", err)
		}
		defer db.Close()
		repo, err := history.NewRepository(db, log)
		if err != nil {
			return fmt.Errorf("repo history %v", err)
		}
		journal = repo
		historyRepo = repo
	} else {
		log.Info("database not configured, riwayat disabled")
	}

	var enqueuer events.Enqueuer
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer producer.Close() //nolint:errcheck
		enqueuer = events.NewEnqueuer(producer)
	}

	catalogSvc := barang.NewService(log, cfg)
	submitSvc := peminjaman.NewService(log, cfg)
	pipeline := form.NewPipeline(log, catalogSvc, submitSvc, journal, enqueuer)

	popupOpts := []notification.Option{
		notification.WithAutoClose(cfg.Popup.AutoClose),
		notification.WithAutoCloseDelay(cfg.Popup.AutoCloseDelay),
		notification.WithTransition(cfg.Popup.Transition),
		notification.WithTick(cfg.Popup.Tick),
	}
	sessions := session.NewManager(log, cfg.Session.TTL, popupOpts...)
	defer sessions.Close()

	h := handler.New(log, sessions, catalogSvc, pipeline, historyRepo)

	// catalog warmup; a failure is logged, sessions re-fetch on demand
	warmupCtx, warmupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if items, _, err := catalogSvc.ListPeminjaman(warmupCtx); err != nil {
		log.Warn("katalog warmup failed", zap.Error(err))
	} else {
		log.Info("katalog ready", zap.Int("items", len(items)))
	}
	warmupCancel()

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
