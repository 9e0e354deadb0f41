package model

import "strconv"

// Theme slot names, one per chrome region a theme may fill.
const (
	SlotHeader       = "header"
	SlotFooter       = "footer"
	SlotLeftSidebar  = "left_sidebar"
	SlotRightSidebar = "right_sidebar"
	SlotBanner       = "banner"
	SlotNav          = "nav"
	SlotBackground   = "background"
)

// PageTheme bundles up to seven optional chrome sub-templates plus a
// free-form meta field, owned by an alias.
type PageTheme struct {
	History
	Name         string `gorm:"not null" json:"name"`
	Meta         string `json:"meta"`
	Header       string `json:"header"`
	Footer       string `json:"footer"`
	LeftSidebar  string `json:"left_sidebar"`
	RightSidebar string `json:"right_sidebar"`
	Banner       string `json:"banner"`
	Nav          string `json:"nav"`
	Background   string `json:"background"`
	OwnerHK      uint   `gorm:"index" json:"owner_hk"`
}

func (PageTheme) TableName() string {
	return "page_themes"
}

// Slots returns the populated sub-templates keyed by slot name. Empty slots
// are omitted.
func (t *PageTheme) Slots() map[string]string {
	all := map[string]string{
		SlotHeader:       t.Header,
		SlotFooter:       t.Footer,
		SlotLeftSidebar:  t.LeftSidebar,
		SlotRightSidebar: t.RightSidebar,
		SlotBanner:       t.Banner,
		SlotNav:          t.Nav,
		SlotBackground:   t.Background,
	}

	slots := make(map[string]string)
	for name, text := range all {
		if text != "" {
			slots[name] = text
		}
	}

	return slots
}

func (t *PageTheme) SearchString() string {
	return t.Name
}

func (t *PageTheme) SearchKey() string {
	return formatSearchKey(strconv.FormatUint(uint64(t.HK), 10), t.SearchString())
}
