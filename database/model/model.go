package model

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Message is one entry of the append-only chat log. Records are never
// physically removed; moderation flips Deleted instead.
type Message struct {
	Id        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Author    string `json:"author" gorm:"index;not null"`
	Text      string `json:"text" gorm:"type:text"`
	CreatedAt string `json:"createdAt"`
	PostedAt  int64  `json:"postedAt"`
	Deleted   bool   `json:"isDeleted"`
	// NeedsModeration is computed once at send time and never recomputed.
	NeedsModeration bool `json:"needsModeration"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
