// Package domain contains application services orchestrating the
// synchronization and webhook pipelines.
package domain

import (
	"context"
	"time"

	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log         *zap.SugaredLogger
	repo        repository.Repository
	client      bitbucket.Client
	dispatcher  *events.Dispatcher
	projectsURL string
	timeout     time.Duration
	handlers    []webhookDescriptor
}

// New constructs the usecase layer with its dependencies. projectsURL
// is the first page of the workspace repository listing.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	client bitbucket.Client,
	dispatcher *events.Dispatcher,
	projectsURL string,
	timeout time.Duration,
) *Usecase {
	u := &Usecase{
		log:         log,
		repo:        repo,
		client:      client,
		dispatcher:  dispatcher,
		projectsURL: projectsURL,
		timeout:     timeout,
	}
	u.handlers = u.webhookHandlers()
	return u
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
