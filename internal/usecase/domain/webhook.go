package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/entities"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/mapper"

	"golang.org/x/sync/errgroup"
)

// webhookDescriptor declares which event keys a handler supports. More
// than one descriptor may match a single delivery.
type webhookDescriptor struct {
	events []string
	handle func(ctx context.Context, eventKey string, payload bitbucket.WebhookPayload) error
}

func (d webhookDescriptor) supports(eventKey string) bool {
	for _, e := range d.events {
		if e == eventKey {
			return true
		}
	}
	return false
}

func (u *Usecase) webhookHandlers() []webhookDescriptor {
	return []webhookDescriptor{
		{
			events: []string{
				events.EventPullRequestCreated,
				events.EventPullRequestUpdated,
				events.EventPullRequestApproved,
				events.EventPullRequestUnapproved,
				events.EventPullRequestFulfilled,
				events.EventPullRequestRejected,
			},
			handle: u.handlePullRequestEvent,
		},
		{
			events: []string{events.EventPullRequestCommentCreated},
			handle: u.handleCommentEvent,
		},
	}
}

// HandleWebhook decodes the delivery once, runs every matching handler
// concurrently and joins them. Event keys nobody handles are logged and
// dropped without error.
func (u *Usecase) HandleWebhook(ctx context.Context, eventKey string, body []byte) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	var payload bitbucket.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: decode webhook body: %v", entities.ErrInvalidPayload, err)
	}

	var matched []webhookDescriptor
	for _, d := range u.handlers {
		if d.supports(eventKey) {
			matched = append(matched, d)
		}
	}
	if len(matched) == 0 {
		u.log.Infow("unhandled webhook event", "event", eventKey)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, d := range matched {
		d := d
		g.Go(func() error {
			return d.handle(gctx, eventKey, payload)
		})
	}
	return g.Wait()
}

// fetchCanonical refetches the referenced pull request through its self
// link; the webhook body itself is never trusted as current state.
func (u *Usecase) fetchCanonical(ctx context.Context, payload bitbucket.WebhookPayload) (entities.PullRequest, error) {
	if payload.PullRequest == nil || payload.PullRequest.Links.Self.Href == "" {
		return entities.PullRequest{}, fmt.Errorf("%w: webhook body without pull request self link", entities.ErrInvalidPayload)
	}
	doc, err := u.client.PullRequestByLink(ctx, payload.PullRequest.Links.Self.Href)
	if err != nil {
		return entities.PullRequest{}, err
	}
	return mapper.FromPullRequestDoc(*doc)
}

func actorOf(payload bitbucket.WebhookPayload) entities.User {
	if payload.Actor == nil {
		return entities.User{}
	}
	return mapper.FromUserDoc(*payload.Actor)
}

func (u *Usecase) handlePullRequestEvent(ctx context.Context, eventKey string, payload bitbucket.WebhookPayload) error {
	pr, err := u.fetchCanonical(ctx, payload)
	if err != nil {
		return err
	}

	switch eventKey {
	case events.EventPullRequestCreated:
		u.repo.Add(pr)
	case events.EventPullRequestUpdated, events.EventPullRequestApproved, events.EventPullRequestUnapproved:
		u.repo.Update(pr)
	case events.EventPullRequestFulfilled, events.EventPullRequestRejected:
		u.repo.Remove(pr)
	}

	u.log.Infow("webhook processed", "event", eventKey, "project", pr.TargetRepository.FullName, "pr", pr.ID)
	u.dispatcher.Emit(events.WebhookTopic(eventKey), entities.PullRequestWithActor{
		PullRequest: pr,
		Actor:       actorOf(payload),
	})
	return nil
}

func (u *Usecase) handleCommentEvent(ctx context.Context, eventKey string, payload bitbucket.WebhookPayload) error {
	if payload.Comment == nil {
		return fmt.Errorf("%w: %s without comment", entities.ErrInvalidPayload, eventKey)
	}
	pr, err := u.fetchCanonical(ctx, payload)
	if err != nil {
		return err
	}

	// Comments never mutate the snapshot.
	u.dispatcher.Emit(events.TopicCommentNew, entities.PullRequestWithComment{
		PullRequest: pr,
		Actor:       actorOf(payload),
		Comment:     mapper.FromCommentDoc(*payload.Comment),
	})
	return nil
}
