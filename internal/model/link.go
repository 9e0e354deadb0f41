package model

import (
	"database/sql"
	"time"
)

// Link kinds, single-character codes on the wire.
const (
	LinkNext     = "n"
	LinkPrevious = "p"
	LinkFirst    = "f"
)

// ValidLinkKind reports whether kind is one of the persistable codes.
func ValidLinkKind(kind string) bool {
	return kind == LinkNext || kind == LinkPrevious || kind == LinkFirst
}

// InverseLinkKind returns the opposite direction for reciprocal link
// creation; first links have no inverse.
func InverseLinkKind(kind string) string {
	switch kind {
	case LinkNext:
		return LinkPrevious
	case LinkPrevious:
		return LinkNext
	}
	return ""
}

// ComicLink is a directed navigation edge between two pages, referenced by
// page key so that link rows stay valid across page edits. Links are not
// versioned: deletion sets DeletedAt instead of removing or copying the row,
// and point-in-time reads compare both timestamps against the query instant.
type ComicLink struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	FromKey   string       `gorm:"size:4;not null;index" json:"from_key"`
	ToKey     string       `gorm:"size:4;not null;index" json:"to_key"`
	Kind      string       `gorm:"size:1;not null" json:"kind"`
	OwnerHK   uint         `gorm:"index" json:"owner_hk"`
	CreatedAt time.Time    `json:"created_at"`
	DeletedAt sql.NullTime `json:"deleted_at"`
}

func (ComicLink) TableName() string {
	return "comic_links"
}

// ActiveAt reports whether the link existed and was not yet deleted at the
// given instant.
func (l *ComicLink) ActiveAt(at time.Time) bool {
	if l.CreatedAt.After(at) {
		return false
	}
	return !l.DeletedAt.Valid || l.DeletedAt.Time.After(at)
}
