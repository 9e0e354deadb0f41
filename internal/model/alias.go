package model

import "strconv"

// Alias is a pen name. Ownership of arcs, templates, themes and pages is
// attributed to an alias, and the alias points back at its author account.
type Alias struct {
	History
	DisplayName string `gorm:"not null" json:"display_name"`
	AuthorID    string `gorm:"uuid;not null;index" json:"author_id"`
}

func (Alias) TableName() string {
	return "aliases"
}

func (a *Alias) SearchString() string {
	return a.DisplayName
}

func (a *Alias) SearchKey() string {
	return formatSearchKey(strconv.FormatUint(uint64(a.HK), 10), a.SearchString())
}
