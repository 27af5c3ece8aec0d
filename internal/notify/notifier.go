// Package notify turns domain events into per-user channel pushes.
package notify

import (
	"pull-request-notifier/internal/entities"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/repository"

	"go.uber.org/zap"
)

// Server-to-client event names.
const (
	EventIntroduced          = "server:introduced"
	EventPullRequestsUpdated = "server:pullrequests:updated"
	EventPullRequestUpdated  = "server:pullrequest:updated"
	EventRemind              = "server:remind"
	EventCommentNew          = "server:comment:new"
)

// SourceIntroduce marks snapshots pushed in response to client:introduce.
const SourceIntroduce = "client:introduce"

// RoomEmitter is the outbound channel abstraction the notifier pushes
// through. Rooms are named by user identity.
type RoomEmitter interface {
	Join(clientID, room string)
	EmitToRoom(room, event string, payload any)
}

// Notifier subscribes to webhook domain events and fans each one out to
// the affected users' rooms.
type Notifier struct {
	log     *zap.SugaredLogger
	repo    repository.Repository
	emitter RoomEmitter
}

// New constructs a notifier.
func New(log *zap.SugaredLogger, repo repository.Repository, emitter RoomEmitter) *Notifier {
	return &Notifier{log: log, repo: repo, emitter: emitter}
}

// Subscribe registers the notifier on every webhook topic.
func (n *Notifier) Subscribe(d *events.Dispatcher) {
	for _, topic := range events.PullRequestTopics() {
		topic := topic
		d.On(topic, func(payload any) {
			n.onPullRequestEvent(topic, payload)
		})
	}
	d.On(events.TopicCommentNew, n.onComment)
}

// onPullRequestEvent pushes a personalized snapshot to the author and
// every reviewer, plus a lightweight single-PR update to reviewers only.
func (n *Notifier) onPullRequestEvent(topic string, payload any) {
	env, ok := payload.(entities.PullRequestWithActor)
	if !ok {
		n.log.Warnw("unexpected payload on webhook topic", "topic", topic)
		return
	}

	for _, identity := range recipients(env.PullRequest) {
		n.emitter.EmitToRoom(identity, EventPullRequestsUpdated, entities.PullRequestEvent{
			Actor:        env.Actor,
			SourceEvent:  topic,
			Context:      env.PullRequest,
			PullRequests: n.repo.FindByUser(identity),
		})
	}
	for _, r := range env.PullRequest.Reviewers {
		n.emitter.EmitToRoom(r.User.Identity(), EventPullRequestUpdated, env.PullRequest)
	}
	n.log.Debugw("fanned out", "topic", topic, "pr", env.PullRequest.ID)
}

// onComment pushes the comment to the pull request's author only.
func (n *Notifier) onComment(payload any) {
	env, ok := payload.(entities.PullRequestWithComment)
	if !ok {
		n.log.Warnw("unexpected payload on comment topic")
		return
	}
	n.emitter.EmitToRoom(env.PullRequest.Author.Identity(), EventCommentNew, env)
}

// Remind pushes a reminder to every reviewer that has not approved the
// given pull request.
func (n *Notifier) Remind(pr entities.PullRequest) {
	for _, r := range pr.UnapprovedReviewers() {
		n.emitter.EmitToRoom(r.User.Identity(), EventRemind, pr)
	}
}

// Introduce joins the client to the room named by its identity and
// pushes the initial snapshot.
func (n *Notifier) Introduce(clientID, identity string) {
	n.emitter.Join(clientID, identity)
	n.emitter.EmitToRoom(identity, EventIntroduced, entities.PullRequestEvent{
		SourceEvent:  SourceIntroduce,
		PullRequests: n.repo.FindByUser(identity),
	})
	n.log.Infow("client introduced", "client", clientID, "identity", identity)
}

// recipients is the ordered identity set: author first, then reviewers,
// each identity once.
func recipients(pr entities.PullRequest) []string {
	seen := make(map[string]bool, len(pr.Reviewers)+1)
	res := make([]string, 0, len(pr.Reviewers)+1)
	add := func(identity string) {
		if identity == "" || seen[identity] {
			return
		}
		seen[identity] = true
		res = append(res, identity)
	}
	add(pr.Author.Identity())
	for _, r := range pr.Reviewers {
		add(r.User.Identity())
	}
	return res
}
