package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/avito-tech/go-transaction-manager/trm/manager"

	"github.com/mover-dashboard/dispatch/config"
	"github.com/mover-dashboard/dispatch/internal/board"
	"github.com/mover-dashboard/dispatch/internal/http"
	"github.com/mover-dashboard/dispatch/internal/http/controller"
	"github.com/mover-dashboard/dispatch/internal/repository/live"
	"github.com/mover-dashboard/dispatch/internal/repository/memory"
	"github.com/mover-dashboard/dispatch/internal/repository/repositories"
	"github.com/mover-dashboard/dispatch/internal/usecase/dashboard"
	"github.com/mover-dashboard/dispatch/pkg/db/postgresql"
	"github.com/mover-dashboard/dispatch/pkg/logger"
)

func main() {

	config.LoadDotEnv()
	appConf := config.NewAppConfig()
	dbConf := config.DatabaseConf()

	log, err := logger.New(logger.Config{
		Level:       appConf.LogLevel,
		Development: appConf.Env != config.EnvProd,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, feed, closeStore := openStore(ctx, appConf, dbConf, log)
	defer closeStore()

	writer := dashboard.NewWriter(store, appConf.Writer, log.With(logger.String("component", "writer")))
	go writer.Run(context.Background())

	uc := dashboard.New(store, writer, log, board.WithHistoryLimit(appConf.HistoryLimit))
	if err := uc.Load(ctx); err != nil {
		log.Fatal("initial load failed", logger.Err(err))
	}

	if feed != nil {
		go func() {
			if err := uc.Watch(ctx, feed); err != nil {
				log.Error("change feed stopped", logger.Err(err))
			}
		}()
	}

	cs := http.Controllers{
		BoardController: controller.NewBoardController(uc),
		JobController:   controller.NewJobController(uc),
		TruckController: controller.NewTruckController(uc),
	}
	r := http.NewRouter(cs)

	e := http.NewHttpServer(appConf, log)
	r.SetupRoutes(e)

	go func() {
		log.Info("http server started", logger.String("addr", appConf.HTTPAddr), logger.String("store", appConf.StoreDriver))
		if err := e.Start(appConf.HTTPAddr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("http server failed", logger.Err(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", logger.Err(err))
	}

	writer.Close()
	select {
	case <-writer.Done():
	case <-shutdownCtx.Done():
		log.Warn("writer did not drain", logger.Int("pending", writer.Stats().Pending))
	}
}

// openStore builds the configured store. Only the redis store has a change
// feed.
func openStore(
	ctx context.Context,
	appConf config.AppConfig,
	dbConf *config.DatabaseConfig,
	log logger.Logger,
) (dashboard.Store, dashboard.Feed, func()) {

	switch appConf.StoreDriver {
	case config.StorePostgres:
		db, err := postgresql.GetInstance(postgresql.Options{
			Host:     dbConf.Pgsql.Host,
			Port:     dbConf.Pgsql.Port,
			User:     dbConf.Pgsql.Username,
			Password: dbConf.Pgsql.Password,
			Database: dbConf.Pgsql.Database,
			Verbose:  appConf.LogLevel == "debug",
		})
		if err != nil {
			log.Fatal("postgres connection failed", logger.Err(err))
		}

		if err := repositories.Migrate(db); err != nil {
			log.Fatal("postgres migration failed", logger.Err(err))
		}

		m, err := manager.New(trmgorm.NewDefaultFactory(db))
		if err != nil {
			log.Fatal("transaction manager", logger.Err(err))
		}

		store := repositories.NewStore(
			m,
			repositories.NewJobRepo(db, trmgorm.DefaultCtxGetter),
			repositories.NewEmployeeRepo(db, trmgorm.DefaultCtxGetter),
			repositories.NewTruckRepo(db, trmgorm.DefaultCtxGetter),
		)

		return store, nil, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}

	case config.StoreRedis:
		rdb, err := live.Connect(ctx, dbConf.Redis)
		if err != nil {
			log.Fatal("redis connection failed", logger.Err(err))
		}

		store := live.New(rdb, dbConf.Redis.Prefix)
		return store, store, func() { _ = rdb.Close() }

	default:
		return memory.New(), nil, func() {}
	}
}
