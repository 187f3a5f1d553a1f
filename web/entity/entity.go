// Package entity defines data structures used by the web layer of the
// Tatar SMS panel.
package entity

// Msg represents a standard API response with success status, message
// text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// FeedItem is one public feed entry, annotated with whether it belongs to
// the requesting session identity.
type FeedItem struct {
	Id              int    `json:"id"`
	Author          string `json:"author"`
	Text            string `json:"text"`
	CreatedAt       string `json:"createdAt"`
	NeedsModeration bool   `json:"needsModeration"`
	Own             bool   `json:"own"`
}
