package model

import "time"

// Author is a real account. It is not versioned; aliases are the public face
// of an author and carry their own history.
type Author struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Author) TableName() string {
	return "authors"
}
