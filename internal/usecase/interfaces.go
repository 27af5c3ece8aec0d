package usecase

import (
	"context"

	"pull-request-notifier/internal/entities"
)

// SyncUsecaseInterface abstracts snapshot synchronization with the remote API.
type SyncUsecaseInterface interface {
	SyncProjects(ctx context.Context) ([]entities.Project, error)
	SyncPullRequests(ctx context.Context, project entities.Project) error
	SyncAll(ctx context.Context) error
}

// WebhookUsecaseInterface abstracts inbound webhook routing.
type WebhookUsecaseInterface interface {
	HandleWebhook(ctx context.Context, eventKey string, body []byte) error
}
