// Package mapper converts raw Bitbucket documents into domain entities.
package mapper

import (
	"fmt"
	"strings"

	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/entities"
)

const reviewerRole = "REVIEWER"

// FromRepositoryDoc builds an entities.Project from a repository document.
func FromRepositoryDoc(src bitbucket.RepositoryDoc) (entities.Project, error) {
	if src.FullName == "" {
		return entities.Project{}, fmt.Errorf("%w: repository without full_name", entities.ErrInvalidPayload)
	}
	return entities.Project{
		Name:            src.Name,
		FullName:        src.FullName,
		PullRequestsURL: src.Links.PullRequests.Href,
	}, nil
}

// FromRepositoryDocs maps a page of repository documents, rejecting the
// whole page on the first invalid entry.
func FromRepositoryDocs(src []bitbucket.RepositoryDoc) ([]entities.Project, error) {
	res := make([]entities.Project, 0, len(src))
	for _, doc := range src {
		p, err := FromRepositoryDoc(doc)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// FromUserDoc builds an entities.User. Bitbucket has served the legacy
// handle under both username and nickname over time.
func FromUserDoc(src bitbucket.UserDoc) entities.User {
	username := src.Username
	if username == "" {
		username = src.Nickname
	}
	return entities.User{
		UUID:        src.UUID,
		Username:    username,
		DisplayName: src.DisplayName,
	}
}

// FromPullRequestDoc builds an entities.PullRequest from the full
// representation. Participants that are not reviewers are dropped.
func FromPullRequestDoc(src bitbucket.PullRequestDoc) (entities.PullRequest, error) {
	if src.ID == 0 {
		return entities.PullRequest{}, fmt.Errorf("%w: pull request without id", entities.ErrInvalidPayload)
	}
	state, err := mapState(src.State)
	if err != nil {
		return entities.PullRequest{}, err
	}
	project, err := FromRepositoryDoc(src.Destination.Repository)
	if err != nil {
		return entities.PullRequest{}, fmt.Errorf("pull request %d: %w", src.ID, err)
	}

	author := FromUserDoc(src.Author)
	if author.Identity() == "" {
		return entities.PullRequest{}, fmt.Errorf("%w: pull request %d without author identity", entities.ErrInvalidPayload, src.ID)
	}

	reviewers := make([]entities.Reviewer, 0, len(src.Participants))
	for _, p := range src.Participants {
		if !strings.EqualFold(p.Role, reviewerRole) {
			continue
		}
		reviewers = append(reviewers, entities.Reviewer{
			User:     FromUserDoc(p.User),
			Approved: p.Approved,
		})
	}

	return entities.PullRequest{
		ID:               src.ID,
		Title:            src.Title,
		Description:      src.Description,
		Author:           author,
		TargetRepository: project,
		TargetBranch:     src.Destination.Branch.Name,
		Reviewers:        reviewers,
		State:            state,
		SelfLink:         src.Links.Self.Href,
	}, nil
}

// FromCommentDoc builds an entities.Comment.
func FromCommentDoc(src bitbucket.CommentDoc) entities.Comment {
	return entities.Comment{
		ID: src.ID,
		Content: entities.CommentContent{
			Raw:    src.Content.Raw,
			HTML:   src.Content.HTML,
			Markup: src.Content.Markup,
		},
		Link: src.Links.HTML.Href,
	}
}

func mapState(raw string) (entities.PullRequestState, error) {
	switch strings.ToUpper(raw) {
	case string(entities.StateOpen):
		return entities.StateOpen, nil
	case string(entities.StateMerged):
		return entities.StateMerged, nil
	case string(entities.StateDeclined):
		return entities.StateDeclined, nil
	default:
		return "", fmt.Errorf("%w: unknown pull request state %q", entities.ErrInvalidPayload, raw)
	}
}
