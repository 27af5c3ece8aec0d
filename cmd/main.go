// Package main wires the pull request notifier service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"pull-request-notifier/config"
	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/notify"
	"pull-request-notifier/internal/repository"
	"pull-request-notifier/internal/transport/http/middleware"
	handlers_fiber "pull-request-notifier/internal/transport/http/server/handlers-fiber"
	"pull-request-notifier/internal/transport/ws"
	"pull-request-notifier/internal/usecase"
	"pull-request-notifier/pkg/logger"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New("memory", log)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	dispatcher := events.NewDispatcher()
	client := bitbucket.New(nil, log, cfg.Bitbucket.BaseURL, bitbucket.Credentials{
		Username:    cfg.Bitbucket.Username,
		AppPassword: cfg.Bitbucket.AppPassword,
	})
	projectsURL := bitbucket.RepositoriesURL(cfg.Bitbucket.BaseURL, cfg.Bitbucket.Workspace)
	uc := usecase.New(log, repo, client, dispatcher, projectsURL, cfg.Sync.RequestTimeout)

	hub := ws.NewHub(log)
	defer hub.Close()
	notifier := notify.New(log, repo, hub)
	notifier.Subscribe(dispatcher)

	syncCtx, cancel := context.WithTimeout(ctx, cfg.Sync.RequestTimeout)
	err = uc.SyncAll(syncCtx)
	cancel()
	if err != nil {
		log.Errorw("initial synchronization failed", "error", err)
		return
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Errorw("scheduler initialization error", "error", err)
		return
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), cfg.Sync.RequestTimeout)
			defer cancel()
			if err := uc.SyncAll(jobCtx); err != nil {
				log.Errorw("periodic synchronization failed", "error", err)
			}
		}),
	)
	if err != nil {
		log.Errorw("scheduler job error", "error", err)
		return
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc, notifier, hub)
	serv.Post("/webhook", h.PostWebhook)
	serv.Use("/ws", h.UpgradeRequired)
	serv.Get("/ws", h.Socket())

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
