// Package entities contains core business entities.
package entities

// PullRequestWithActor bundles a pull request with the user whose
// action triggered a webhook delivery. Built per delivery, never stored.
type PullRequestWithActor struct {
	PullRequest PullRequest `json:"pullRequest"`
	Actor       User        `json:"actor"`
}

// PullRequestWithComment additionally carries the comment that was created.
type PullRequestWithComment struct {
	PullRequest PullRequest `json:"pullRequest"`
	Actor       User        `json:"actor"`
	Comment     Comment     `json:"comment"`
}

// PullRequestEvent is the personalized payload pushed to a single user:
// the triggering actor and event, the affected pull request as context,
// and that user's full current snapshot.
type PullRequestEvent struct {
	Actor        User          `json:"actor"`
	SourceEvent  string        `json:"sourceEvent"`
	Context      PullRequest   `json:"context"`
	PullRequests []PullRequest `json:"pullRequests"`
}
