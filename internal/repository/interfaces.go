// Package repository contains repository interfaces for the snapshot store.
package repository

import (
	"context"

	"pull-request-notifier/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// ProjectInterface exposes the project snapshot operations.
type ProjectInterface interface {
	Projects() []entities.Project
	ReplaceProjects(projects []entities.Project)
}

// PullRequestInterface exposes the pull request snapshot operations.
// The store holds a pull request iff its state is open; Update is the
// single transition point enforcing that.
type PullRequestInterface interface {
	FindAll() []entities.PullRequest
	FindByReviewer(identity string) []entities.PullRequest
	FindByAuthor(identity string) []entities.PullRequest
	FindByUser(identity string) []entities.PullRequest
	ReplacePullRequests(projectFullName string, prs []entities.PullRequest)
	Add(pr entities.PullRequest)
	Update(pr entities.PullRequest)
	Remove(pr entities.PullRequest)
}
