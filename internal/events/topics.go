package events

// Webhook event keys as delivered in the x-event-key header.
const (
	EventPullRequestCreated        = "pullrequest:created"
	EventPullRequestUpdated        = "pullrequest:updated"
	EventPullRequestApproved       = "pullrequest:approved"
	EventPullRequestUnapproved     = "pullrequest:unapproved"
	EventPullRequestFulfilled      = "pullrequest:fulfilled"
	EventPullRequestRejected       = "pullrequest:rejected"
	EventPullRequestCommentCreated = "pullrequest:comment_created"
)

// TopicCommentNew is the fixed dispatcher topic for created comments.
const TopicCommentNew = "webhook:comment:new"

// WebhookTopic names the dispatcher topic republished for an event key.
func WebhookTopic(eventKey string) string {
	return "webhook:" + eventKey
}

// PullRequestTopics lists the dispatcher topics for every
// pull-request-affecting webhook event.
func PullRequestTopics() []string {
	return []string{
		WebhookTopic(EventPullRequestCreated),
		WebhookTopic(EventPullRequestUpdated),
		WebhookTopic(EventPullRequestApproved),
		WebhookTopic(EventPullRequestUnapproved),
		WebhookTopic(EventPullRequestFulfilled),
		WebhookTopic(EventPullRequestRejected),
	}
}
