package notify

import (
	"testing"

	"pull-request-notifier/internal/entities"
	"pull-request-notifier/internal/events"
	"pull-request-notifier/internal/repository/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emitterMock struct{ mock.Mock }

var _ RoomEmitter = (*emitterMock)(nil)

func (m *emitterMock) Join(clientID, room string) {
	m.Called(clientID, room)
}

func (m *emitterMock) EmitToRoom(room, event string, payload any) {
	m.Called(room, event, payload)
}

func (m *emitterMock) emissions(event string) []mock.Call {
	var res []mock.Call
	for _, c := range m.Calls {
		if c.Method == "EmitToRoom" && c.Arguments.String(1) == event {
			res = append(res, c)
		}
	}
	return res
}

func reviewer(username string, approved bool) entities.Reviewer {
	return entities.Reviewer{User: entities.User{Username: username}, Approved: approved}
}

func testPR(reviewers ...entities.Reviewer) entities.PullRequest {
	return entities.PullRequest{
		ID:               1,
		Title:            "pr",
		Author:           entities.User{Username: "ned"},
		TargetRepository: entities.Project{FullName: "acme/repo"},
		Reviewers:        reviewers,
		State:            entities.StateOpen,
	}
}

func setup(t *testing.T) (*Notifier, *memory.Store, *emitterMock, *events.Dispatcher) {
	t.Helper()
	store := memory.New(zap.NewNop().Sugar())
	emitter := &emitterMock{}
	emitter.On("Join", mock.Anything, mock.Anything).Return()
	emitter.On("EmitToRoom", mock.Anything, mock.Anything, mock.Anything).Return()
	dispatcher := events.NewDispatcher()
	n := New(zap.NewNop().Sugar(), store, emitter)
	n.Subscribe(dispatcher)
	return n, store, emitter, dispatcher
}

func TestFanOutPushesSnapshotToAuthorAndReviewers(t *testing.T) {
	_, store, emitter, dispatcher := setup(t)

	pr := testPR(reviewer("jon", false), reviewer("arya", true))
	store.Add(pr)

	topic := events.WebhookTopic(events.EventPullRequestUpdated)
	dispatcher.Emit(topic, entities.PullRequestWithActor{PullRequest: pr, Actor: entities.User{Username: "jon"}})

	snapshots := emitter.emissions(EventPullRequestsUpdated)
	require.Len(t, snapshots, 3)

	rooms := make(map[string]entities.PullRequestEvent)
	for _, c := range snapshots {
		evt, ok := c.Arguments.Get(2).(entities.PullRequestEvent)
		require.True(t, ok)
		rooms[c.Arguments.String(0)] = evt
	}
	require.Len(t, rooms, 3)
	for _, identity := range []string{"ned", "jon", "arya"} {
		evt, ok := rooms[identity]
		require.True(t, ok, "missing emission for %s", identity)
		require.Equal(t, topic, evt.SourceEvent)
		require.Equal(t, pr.ID, evt.Context.ID)
		require.Len(t, evt.PullRequests, 1)
	}
}

func TestFanOutNarrowUpdateGoesToReviewersOnly(t *testing.T) {
	_, store, emitter, dispatcher := setup(t)

	pr := testPR(reviewer("jon", false), reviewer("arya", true))
	store.Add(pr)

	dispatcher.Emit(events.WebhookTopic(events.EventPullRequestApproved),
		entities.PullRequestWithActor{PullRequest: pr})

	narrow := emitter.emissions(EventPullRequestUpdated)
	require.Len(t, narrow, 2)
	require.ElementsMatch(t,
		[]string{"jon", "arya"},
		[]string{narrow[0].Arguments.String(0), narrow[1].Arguments.String(0)},
	)
	sent, ok := narrow[0].Arguments.Get(2).(entities.PullRequest)
	require.True(t, ok)
	require.Equal(t, pr.ID, sent.ID)
}

func TestFanOutDeduplicatesAuthorReviewer(t *testing.T) {
	_, store, emitter, dispatcher := setup(t)

	// ned authored and also reviews.
	pr := testPR(reviewer("ned", false), reviewer("jon", false))
	store.Add(pr)

	dispatcher.Emit(events.WebhookTopic(events.EventPullRequestUpdated),
		entities.PullRequestWithActor{PullRequest: pr})

	require.Len(t, emitter.emissions(EventPullRequestsUpdated), 2)
}

func TestCommentGoesToAuthorOnly(t *testing.T) {
	_, store, emitter, dispatcher := setup(t)

	pr := testPR(reviewer("jon", false))
	store.Add(pr)

	env := entities.PullRequestWithComment{
		PullRequest: pr,
		Actor:       entities.User{Username: "jon"},
		Comment:     entities.Comment{ID: 5, Content: entities.CommentContent{Raw: "lgtm"}},
	}
	dispatcher.Emit(events.TopicCommentNew, env)

	comments := emitter.emissions(EventCommentNew)
	require.Len(t, comments, 1)
	require.Equal(t, "ned", comments[0].Arguments.String(0))
	require.Equal(t, env, comments[0].Arguments.Get(2))
	require.Empty(t, emitter.emissions(EventPullRequestsUpdated))
}

func TestRemindTargetsUnapprovedReviewersOnly(t *testing.T) {
	n, _, emitter, _ := setup(t)

	pr := testPR(reviewer("jon", true), reviewer("arya", true), reviewer("sansa", false))
	n.Remind(pr)

	reminders := emitter.emissions(EventRemind)
	require.Len(t, reminders, 1)
	require.Equal(t, "sansa", reminders[0].Arguments.String(0))
}

func TestIntroduceJoinsRoomAndPushesSnapshot(t *testing.T) {
	n, store, emitter, _ := setup(t)

	store.Add(testPR(reviewer("jon", false)))

	n.Introduce("c1", "jon")

	emitter.AssertCalled(t, "Join", "c1", "jon")
	intro := emitter.emissions(EventIntroduced)
	require.Len(t, intro, 1)
	require.Equal(t, "jon", intro[0].Arguments.String(0))

	evt, ok := intro[0].Arguments.Get(2).(entities.PullRequestEvent)
	require.True(t, ok)
	require.Equal(t, SourceIntroduce, evt.SourceEvent)
	require.Len(t, evt.PullRequests, 1)
}

func TestIgnoresUnexpectedPayloadType(t *testing.T) {
	_, _, emitter, dispatcher := setup(t)

	dispatcher.Emit(events.WebhookTopic(events.EventPullRequestUpdated), "garbage")
	dispatcher.Emit(events.TopicCommentNew, 42)

	require.Empty(t, emitter.Calls)
}
