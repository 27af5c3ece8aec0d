// Package entities contains core business entities.
package entities

// CommentContent carries the comment body in its rendered variants.
type CommentContent struct {
	Raw    string `json:"raw"`
	HTML   string `json:"html,omitempty"`
	Markup string `json:"markup,omitempty"`
}

// Comment is a pull request comment. Comments ride on notification
// payloads only and are never stored.
type Comment struct {
	ID      int            `json:"id"`
	Content CommentContent `json:"content"`
	Link    string         `json:"link,omitempty"`
}
