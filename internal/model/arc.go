package model

import (
	"fmt"
	"strconv"
)

// ComicArc is a named story arc. The (slug_name, display_name) pair is
// unique among latest versions.
type ComicArc struct {
	History
	SlugName    string `gorm:"not null;index" json:"slug_name"`
	DisplayName string `gorm:"not null" json:"display_name"`
	OwnerHK     uint   `gorm:"index" json:"owner_hk"`
}

func (ComicArc) TableName() string {
	return "comic_arcs"
}

func (a *ComicArc) SearchString() string {
	return fmt.Sprintf("%s (%s)", a.DisplayName, a.SlugName)
}

func (a *ComicArc) SearchKey() string {
	return formatSearchKey(strconv.FormatUint(uint64(a.HK), 10), a.SearchString())
}
