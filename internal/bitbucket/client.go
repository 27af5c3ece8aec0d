package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const snippetLimit = 512

// FetchError is the single failure kind for all remote interaction:
// either the transport failed (StatusCode 0) or the API answered with
// a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Snippet    string
	cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.Snippet)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.cause)
}

func (e *FetchError) Unwrap() error { return e.cause }

// Credentials is the basic-auth pair used for every API call.
type Credentials struct {
	Username    string
	AppPassword string
}

// Client exposes the remote reads the synchronization pipeline needs.
type Client interface {
	ProjectsPage(ctx context.Context, url string) (*RepositoryPage, error)
	PullRequestListPage(ctx context.Context, url string) (*PullRequestListPage, error)
	PullRequestByLink(ctx context.Context, href string) (*PullRequestDoc, error)
	PullRequestByCoordinates(ctx context.Context, workspace, repo string, id int) (*PullRequestDoc, error)
}

type httpClient struct {
	http  *http.Client
	log   *zap.SugaredLogger
	base  string
	creds Credentials
}

// New returns a production client. The http.Client may be nil, and can
// be swapped for a stub in tests.
func New(hc *http.Client, log *zap.SugaredLogger, baseURL string, creds Credentials) Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &httpClient{http: hc, log: log, base: baseURL, creds: creds}
}

// getJSON is the choke point every remote read goes through; all
// failure classification happens here.
func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, cause: err}
	}
	req.SetBasicAuth(c.creds.Username, c.creds.AppPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: url, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{URL: url, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorw("remote api error", "url", url, "status", resp.StatusCode)
		return &FetchError{URL: url, StatusCode: resp.StatusCode, Snippet: snippet(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{URL: url, StatusCode: resp.StatusCode, Snippet: snippet(body), cause: err}
	}
	return nil
}

func snippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}

// ProjectsPage fetches one page of the workspace repository listing.
func (c *httpClient) ProjectsPage(ctx context.Context, url string) (*RepositoryPage, error) {
	var page RepositoryPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}
	c.log.Debugw("fetched repository page", "url", url, "values", len(page.Values))
	return &page, nil
}

// PullRequestListPage fetches one page of open pull request stubs.
func (c *httpClient) PullRequestListPage(ctx context.Context, url string) (*PullRequestListPage, error) {
	var page PullRequestListPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}
	c.log.Debugw("fetched pull request page", "url", url, "values", len(page.Values))
	return &page, nil
}

// PullRequestByLink hydrates a pull request from its self link.
func (c *httpClient) PullRequestByLink(ctx context.Context, href string) (*PullRequestDoc, error) {
	var doc PullRequestDoc
	if err := c.getJSON(ctx, href, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PullRequestByCoordinates fetches a single pull request by workspace,
// repository slug and id.
func (c *httpClient) PullRequestByCoordinates(ctx context.Context, workspace, repo string, id int) (*PullRequestDoc, error) {
	url := fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d", c.base, workspace, repo, id)
	return c.PullRequestByLink(ctx, url)
}

// RepositoriesURL builds the first page URL of the workspace listing.
func RepositoriesURL(baseURL, workspace string) string {
	return fmt.Sprintf("%s/repositories/%s", baseURL, workspace)
}
