// Package entities contains core business entities.
package entities

// Project is a repository inside the synchronized workspace.
// FullName ("org/repo") is the unique key.
type Project struct {
	Name            string `json:"name"`
	FullName        string `json:"fullName"`
	PullRequestsURL string `json:"pullRequestsUrl,omitempty"`
}
