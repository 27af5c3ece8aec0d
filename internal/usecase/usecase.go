// Package usecase exposes the application service layer.
package usecase

import (
	"time"

	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/repository"
	"pull-request-notifier/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	SyncUsecaseInterface
	WebhookUsecaseInterface
}

// New constructs the usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	client bitbucket.Client,
	dispatcher *events.Dispatcher,
	projectsURL string,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, repo, client, dispatcher, projectsURL, timeout)
}
