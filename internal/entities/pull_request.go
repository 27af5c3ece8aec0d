// Package entities contains core business entities.
package entities

// PullRequestState enumerates PR lifecycle states.
type PullRequestState string

const (
	// StateOpen marks PR as open.
	StateOpen PullRequestState = "OPEN"
	// StateMerged marks PR as merged.
	StateMerged PullRequestState = "MERGED"
	// StateDeclined marks PR as declined.
	StateDeclined PullRequestState = "DECLINED"
)

// PullRequest is a domain model of a PR. Identity is
// (TargetRepository.FullName, ID).
type PullRequest struct {
	ID               int              `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Author           User             `json:"author"`
	TargetRepository Project          `json:"targetRepository"`
	TargetBranch     string           `json:"targetBranch,omitempty"`
	Reviewers        []Reviewer       `json:"reviewers"`
	State            PullRequestState `json:"state"`
	SelfLink         string           `json:"selfLink,omitempty"`
}

// UnapprovedReviewers returns reviewers that have not approved yet.
func (pr PullRequest) UnapprovedReviewers() []Reviewer {
	res := make([]Reviewer, 0, len(pr.Reviewers))
	for _, r := range pr.Reviewers {
		if !r.Approved {
			res = append(res, r)
		}
	}
	return res
}
