// Package entities contains core business entities.
package entities

// User identifies a Bitbucket account. UUID is the stable identity;
// Username remains for accounts predating UUID rollout.
type User struct {
	UUID        string `json:"uuid,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Identity returns the preferred stable identifier for the user.
func (u User) Identity() string {
	if u.UUID != "" {
		return u.UUID
	}
	return u.Username
}

// Reviewer is a user attached to a pull request with an approval flag.
type Reviewer struct {
	User     User `json:"user"`
	Approved bool `json:"approved"`
}
