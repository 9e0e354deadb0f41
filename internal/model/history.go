package model

import (
	"strings"
	"time"
)

// History carries the version-row bookkeeping shared by every historied
// entity except ComicPage (whose historical key is the page key, a business
// field). RowID is the storage identity of one version row. HK ties every
// version of one logical entity together and never changes after the first
// save.
type History struct {
	RowID     uint      `gorm:"primaryKey;autoIncrement" json:"row_id"`
	HK        uint      `gorm:"index" json:"hk"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (h History) HistoryKey() uint {
	return h.HK
}

func (h *History) SetHistoryKey(hk uint) {
	h.HK = hk
}

func (h History) StorageID() uint {
	return h.RowID
}

func (h *History) SetStorageID(id uint) {
	h.RowID = id
}

func (h *History) Stamp(at time.Time) {
	h.CreatedAt = at
}

// Versioned is the capability of an entity whose saves are copy-on-write.
// Embedding History satisfies it.
type Versioned interface {
	HistoryKey() uint
	SetHistoryKey(hk uint)
	StorageID() uint
	SetStorageID(id uint)
	Stamp(at time.Time)
}

// Searchable is the capability of an entity that can round-trip through an
// autocomplete widget. SearchKey is "<hk>: <label>"; only the hk part is ever
// parsed back.
type Searchable interface {
	SearchKey() string
	SearchString() string
}

func formatSearchKey(hk, label string) string {
	return hk + ": " + label
}

// SearchKeyHK returns the hk portion of a search key, the substring before
// the first colon. The remainder is display text and is never interpreted.
func SearchKeyHK(key string) string {
	before, _, found := strings.Cut(key, ":")
	if !found {
		return strings.TrimSpace(key)
	}
	return strings.TrimSpace(before)
}
