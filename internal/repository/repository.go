// Package repository provides factory for repositories.
package repository

import (
	"fmt"

	"pull-request-notifier/internal/repository/memory"

	"go.uber.org/zap"
)

// Repository aggregates all snapshot store interfaces.
type Repository interface {
	LifecycleInterface
	ProjectInterface
	PullRequestInterface
}

// New constructs repository backend by name.
func New(name string, log *zap.SugaredLogger) (Repository, error) {
	switch name {
	case "memory":
		return memory.New(log), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
