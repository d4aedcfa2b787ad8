package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/quizzzy/internal/api/http/context"
	"github.com/dtroode/quizzzy/internal/api/http/router"
	httpServer "github.com/dtroode/quizzzy/internal/api/http/server"
	"github.com/dtroode/quizzzy/internal/config"
	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/messaging/rabbitmq"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/render"
	"github.com/dtroode/quizzzy/internal/repository"
	"github.com/dtroode/quizzzy/internal/repository/memory"
	"github.com/dtroode/quizzzy/internal/repository/postgres"
	"github.com/dtroode/quizzzy/internal/repository/redis"
	"github.com/dtroode/quizzzy/internal/server"
	"github.com/dtroode/quizzzy/internal/service"
	storage "github.com/dtroode/quizzzy/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	backend, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize store", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()
	store := repository.NewNamespaced(backend, cfg.Store.Namespace)

	var media model.Storage
	if cfg.Storage.Enabled {
		mediaStore, err := storage.NewMediaStore(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize media storage", "error", err)
		}
		media = mediaStore
	}

	var publisher model.ActivityPublisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", "error", err)
		}
		defer p.Close()
		publisher = p
	}

	hub := render.NewHub(logger.With("component", "render_hub"))
	go hub.Run(ctx)

	ctxMgr := httpctx.NewManager(hub)
	renderer := render.Fanout{ctxMgr, hub}

	authService := service.NewAuth(
		repository.NewCollection[model.User](store, model.KeyUsers),
		repository.NewSessionRepository(store),
		ctxMgr, publisher, logger, cfg.SeedDemoData)
	quizService := service.NewQuiz(
		repository.NewCollection[model.Quiz](store, model.KeyQuizzes),
		repository.NewCollection[model.Event](store, model.KeyEvents),
		repository.NewCollection[model.Submission](store, model.KeySubmissions),
		authService, ctxMgr, renderer, publisher, logger, cfg.SeedDemoData)
	userService := service.NewUser(authService, quizService, ctxMgr, ctxMgr, renderer, publisher, media, logger)
	platformService := service.NewPlatform(authService, quizService, userService, renderer, logger)

	r := router.New(authService, quizService, userService, platformService, hub, ctxMgr, logger)
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP.Address)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStore connects the configured key-value backend.
func openStore(ctx context.Context, cfg *config.Config) (model.KVStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		s, err := redis.NewKVStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s), nil
	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewKVRepository(db), closer(db), nil
	default:
		return memory.NewKVStore(), func() {}, nil
	}
}

func closer(c io.Closer) func() {
	return func() { _ = c.Close() }
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
