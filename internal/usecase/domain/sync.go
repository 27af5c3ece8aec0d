package domain

import (
	"context"
	"fmt"
	"net/url"

	"pull-request-notifier/internal/bitbucket"
	"pull-request-notifier/internal/entities"
	"pull-request-notifier/internal/mapper"

	"golang.org/x/sync/errgroup"
)

// SyncProjects rebuilds the project list from the workspace repository
// listing and replaces the stored list wholesale. Returns the mapped
// projects so callers can chain per-project synchronization.
func (u *Usecase) SyncProjects(ctx context.Context) ([]entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	first, err := u.client.ProjectsPage(ctx, u.projectsURL)
	if err != nil {
		return nil, err
	}
	projects, err := mapper.FromRepositoryDocs(first.Values)
	if err != nil {
		return nil, err
	}

	pages, err := bitbucket.RemainingPages(first.Envelope)
	if err != nil {
		return nil, err
	}
	rest := make([][]entities.Project, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, pageURL := range pages {
		i, pageURL := i, pageURL
		g.Go(func() error {
			page, err := u.client.ProjectsPage(gctx, pageURL)
			if err != nil {
				return err
			}
			mapped, err := mapper.FromRepositoryDocs(page.Values)
			if err != nil {
				return err
			}
			rest[i] = mapped
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, mapped := range rest {
		projects = append(projects, mapped...)
	}

	u.repo.ReplaceProjects(projects)
	u.log.Infow("projects synchronized", "count", len(projects))
	return projects, nil
}

// SyncPullRequests rebuilds the open pull request snapshot for one
// project. List endpoints return stubs only, so every entry is hydrated
// through its self link before anything is committed; any failed page
// or detail fetch aborts the whole operation and the prior snapshot
// stays in place.
func (u *Usecase) SyncPullRequests(ctx context.Context, project entities.Project) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if project.PullRequestsURL == "" {
		return fmt.Errorf("%w: project %s has no pull requests link", entities.ErrInvalidArgument, project.FullName)
	}
	listURL, err := openListURL(project.PullRequestsURL)
	if err != nil {
		return err
	}

	first, err := u.client.PullRequestListPage(ctx, listURL)
	if err != nil {
		return err
	}
	stubs := first.Values

	pages, err := bitbucket.RemainingPages(first.Envelope)
	if err != nil {
		return err
	}
	rest := make([][]bitbucket.PullRequestStub, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, pageURL := range pages {
		i, pageURL := i, pageURL
		g.Go(func() error {
			page, err := u.client.PullRequestListPage(gctx, pageURL)
			if err != nil {
				return err
			}
			rest[i] = page.Values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, values := range rest {
		stubs = append(stubs, values...)
	}

	prs := make([]entities.PullRequest, len(stubs))
	g, gctx = errgroup.WithContext(ctx)
	for i, stub := range stubs {
		i, stub := i, stub
		g.Go(func() error {
			href := stub.Links.Self.Href
			if href == "" {
				return fmt.Errorf("%w: pull request stub without self link in %s", entities.ErrInvalidPayload, project.FullName)
			}
			doc, err := u.client.PullRequestByLink(gctx, href)
			if err != nil {
				return err
			}
			pr, err := mapper.FromPullRequestDoc(*doc)
			if err != nil {
				return err
			}
			prs[i] = pr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	u.repo.ReplacePullRequests(project.FullName, prs)
	u.log.Infow("pull requests synchronized", "project", project.FullName, "count", len(prs))
	return nil
}

// SyncAll runs a full snapshot rebuild: projects first, then every
// project's open pull requests.
func (u *Usecase) SyncAll(ctx context.Context) error {
	projects, err := u.SyncProjects(ctx)
	if err != nil {
		return err
	}
	for _, project := range projects {
		if err := u.SyncPullRequests(ctx, project); err != nil {
			return err
		}
	}
	return nil
}

func openListURL(pullRequestsURL string) (string, error) {
	parsed, err := url.Parse(pullRequestsURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse pull requests link %q: %v", entities.ErrInvalidPayload, pullRequestsURL, err)
	}
	query := parsed.Query()
	query.Set("state", "OPEN")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
