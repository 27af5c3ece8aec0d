// Package bitbucket talks to the Bitbucket Cloud REST API and defines
// the raw wire shapes it returns.
package bitbucket

// Link is a single href entry inside a links object.
type Link struct {
	Href string `json:"href"`
}

// Links groups the hypermedia links attached to an API resource.
type Links struct {
	Self Link `json:"self"`
	HTML Link `json:"html"`
}

// Envelope carries the pagination fields shared by every list response.
type Envelope struct {
	Size    int    `json:"size"`
	Pagelen int    `json:"pagelen"`
	Next    string `json:"next"`
}

// RepositoryDoc is a repository entry from /repositories/{workspace}.
type RepositoryDoc struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Links    struct {
		Self         Link `json:"self"`
		PullRequests Link `json:"pullrequests"`
	} `json:"links"`
}

// RepositoryPage is one page of the repository listing.
type RepositoryPage struct {
	Envelope
	Values []RepositoryDoc `json:"values"`
}

// UserDoc is an account reference embedded in other documents.
type UserDoc struct {
	UUID        string `json:"uuid"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	DisplayName string `json:"display_name"`
}

// ParticipantDoc is a pull request participant; only entries with
// role REVIEWER carry review semantics.
type ParticipantDoc struct {
	Role     string  `json:"role"`
	User     UserDoc `json:"user"`
	Approved bool    `json:"approved"`
}

// PullRequestDoc is the full pull request representation.
type PullRequestDoc struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	State       string  `json:"state"`
	Author      UserDoc `json:"author"`
	Destination struct {
		Repository RepositoryDoc `json:"repository"`
		Branch     struct {
			Name string `json:"name"`
		} `json:"branch"`
	} `json:"destination"`
	Participants []ParticipantDoc `json:"participants"`
	Links        Links            `json:"links"`
}

// PullRequestStub is the partial representation returned by list
// endpoints; only the self link is trusted, the rest requires hydration.
type PullRequestStub struct {
	ID    int   `json:"id"`
	Links Links `json:"links"`
}

// PullRequestListPage is one page of the open pull request listing.
type PullRequestListPage struct {
	Envelope
	Values []PullRequestStub `json:"values"`
}

// CommentDoc is a pull request comment as delivered in webhook payloads.
type CommentDoc struct {
	ID      int `json:"id"`
	Content struct {
		Raw    string `json:"raw"`
		HTML   string `json:"html"`
		Markup string `json:"markup"`
	} `json:"content"`
	Links Links `json:"links"`
}

// WebhookPayload is the body of an inbound webhook delivery.
type WebhookPayload struct {
	PullRequest *PullRequestDoc `json:"pullrequest"`
	Actor       *UserDoc        `json:"actor"`
	Comment     *CommentDoc     `json:"comment"`
}
