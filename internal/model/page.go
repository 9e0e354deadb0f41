package model

import "time"

// ComicPage is one version of a comic page. Its historical key is the page
// key, a business field, so it does not embed History: the row id is still
// the storage identity of a single version, but versions of one page share a
// page key rather than a synthetic hk.
//
// Arc, template, theme and owner are referenced by their own historical
// keys. The point-in-time resolver re-derives the right version of each at
// read time; nothing is pinned to a specific row.
type ComicPage struct {
	RowID      uint      `gorm:"primaryKey;autoIncrement" json:"row_id"`
	PageKey    string    `gorm:"size:4;not null;index" json:"page_key"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Title      string    `gorm:"not null" json:"title"`
	ArcHK      uint      `gorm:"index" json:"arc_hk"`
	Image      string    `json:"image"`
	AltText    string    `json:"alt_text"`
	Transcript string    `json:"transcript"`
	TemplateHK uint      `json:"template_hk"`
	ThemeHK    uint      `json:"theme_hk"`
	OwnerHK    uint      `gorm:"index" json:"owner_hk"`
}

func (ComicPage) TableName() string {
	return "comic_pages"
}

func (p *ComicPage) SearchString() string {
	return p.Title
}

func (p *ComicPage) SearchKey() string {
	return formatSearchKey(p.PageKey, p.SearchString())
}
