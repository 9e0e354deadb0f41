package model

import "strconv"

// PageTemplate is a named, reusable rendering template owned by an alias.
// Pages reference it by hk, so an edit creates a new version and every page
// using the template picks it up on the next resolution.
type PageTemplate struct {
	History
	Name     string `gorm:"not null" json:"name"`
	Template string `gorm:"not null" json:"template"`
	OwnerHK  uint   `gorm:"index" json:"owner_hk"`
}

func (PageTemplate) TableName() string {
	return "page_templates"
}

func (t *PageTemplate) SearchString() string {
	return t.Name
}

func (t *PageTemplate) SearchKey() string {
	return formatSearchKey(strconv.FormatUint(uint64(t.HK), 10), t.SearchString())
}
