// Package memory implements the snapshot store as in-process state.
// A restart rebuilds it from the remote API, nothing is persisted.
package memory

import (
	"context"
	"sync"

	"pull-request-notifier/internal/entities"

	"go.uber.org/zap"
)

// Store keeps the authoritative set of open pull requests, bucketed by
// project full name. Buckets are linear-scanned; team-sized data makes
// identity correctness the concern, not asymptotics.
type Store struct {
	log *zap.SugaredLogger

	mu       sync.RWMutex
	projects []entities.Project
	pulls    map[string][]entities.PullRequest
}

// New constructs an empty store.
func New(log *zap.SugaredLogger) *Store {
	return &Store{
		log:   log,
		pulls: make(map[string][]entities.PullRequest),
	}
}

// OnStart implements the lifecycle hook.
func (s *Store) OnStart(_ context.Context) error { return nil }

// OnStop implements the lifecycle hook.
func (s *Store) OnStop(_ context.Context) error { return nil }

// Projects returns the current project list.
func (s *Store) Projects() []entities.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]entities.Project, len(s.projects))
	copy(res, s.projects)
	return res
}

// ReplaceProjects swaps the project list wholesale.
func (s *Store) ReplaceProjects(projects []entities.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make([]entities.Project, len(projects))
	copy(s.projects, projects)
}

// ReplacePullRequests commits a full snapshot for one project, replacing
// any prior snapshot under that key.
func (s *Store) ReplacePullRequests(projectFullName string, prs []entities.PullRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := make([]entities.PullRequest, len(prs))
	copy(bucket, prs)
	s.pulls[projectFullName] = bucket
	s.log.Debugw("snapshot replaced", "project", projectFullName, "count", len(bucket))
}

// FindAll returns every stored pull request. Project order is
// unspecified, order within a project is preserved.
func (s *Store) FindAll() []entities.PullRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []entities.PullRequest
	for _, bucket := range s.pulls {
		res = append(res, bucket...)
	}
	return res
}

// FindByReviewer returns pull requests where any reviewer matches the identity.
func (s *Store) FindByReviewer(identity string) []entities.PullRequest {
	return s.filter(func(pr entities.PullRequest) bool {
		for _, r := range pr.Reviewers {
			if r.User.Identity() == identity {
				return true
			}
		}
		return false
	})
}

// FindByAuthor returns pull requests authored by the identity.
func (s *Store) FindByAuthor(identity string) []entities.PullRequest {
	return s.filter(func(pr entities.PullRequest) bool {
		return pr.Author.Identity() == identity
	})
}

// FindByUser returns the union of authored and reviewed pull requests,
// with a pull request appearing once even when the user holds both roles.
func (s *Store) FindByUser(identity string) []entities.PullRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		project string
		id      int
	}
	seen := make(map[key]bool)
	var res []entities.PullRequest
	collect := func(prs []entities.PullRequest) {
		for _, pr := range prs {
			k := key{pr.TargetRepository.FullName, pr.ID}
			if seen[k] {
				continue
			}
			seen[k] = true
			res = append(res, pr)
		}
	}
	collect(s.filterLocked(func(pr entities.PullRequest) bool {
		return pr.Author.Identity() == identity
	}))
	collect(s.filterLocked(func(pr entities.PullRequest) bool {
		for _, r := range pr.Reviewers {
			if r.User.Identity() == identity {
				return true
			}
		}
		return false
	}))
	return res
}

// Add appends the pull request to its project bucket, creating the
// bucket when absent. Duplicate checking is the caller's business.
func (s *Store) Add(pr entities.PullRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pr.TargetRepository.FullName
	s.pulls[key] = append(s.pulls[key], pr)
}

// Update is the single state transition point: a non-open pull request
// is removed, an open one replaces its stored entry in place, and an
// unknown open one is added.
func (s *Store) Update(pr entities.PullRequest) {
	if pr.State != entities.StateOpen {
		s.Remove(pr)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := pr.TargetRepository.FullName
	for i, stored := range s.pulls[key] {
		if stored.ID == pr.ID {
			s.pulls[key][i] = pr
			return
		}
	}
	s.pulls[key] = append(s.pulls[key], pr)
}

// Remove deletes the matching pull request; no-op when absent.
func (s *Store) Remove(pr entities.PullRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pr.TargetRepository.FullName
	bucket := s.pulls[key]
	for i, stored := range bucket {
		if stored.ID == pr.ID {
			s.pulls[key] = append(bucket[:i:i], bucket[i+1:]...)
			return
		}
	}
}

func (s *Store) filter(pred func(entities.PullRequest) bool) []entities.PullRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(pred)
}

func (s *Store) filterLocked(pred func(entities.PullRequest) bool) []entities.PullRequest {
	var res []entities.PullRequest
	for _, bucket := range s.pulls {
		for _, pr := range bucket {
			if pred(pr) {
				res = append(res, pr)
			}
		}
	}
	return res
}
