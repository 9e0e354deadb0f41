package model

import "time"

// ForumPost is a reader comment attached to the specific page version row
// that was current when the post was made. Not versioned, not historied.
type ForumPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	SourceRow uint      `gorm:"not null;index" json:"source_row"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}
