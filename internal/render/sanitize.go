package render

import (
	"time"

	"github.com/qtje/comic/internal/model"
)

// ConflictMarker prefixes the display name of an alias whose name is shared
// by another alias, so readers can tell the two apart.
const ConflictMarker = "⚠ "

// SafeAlias is the display-safe projection of an alias. Raw account and
// ownership data never reaches a user-controlled template; only this does.
type SafeAlias struct {
	Name       string `json:"name"`
	Conflicted bool   `json:"conflicted"`
}

func SanitizeAlias(alias *model.Alias, conflicted bool) SafeAlias {
	name := alias.DisplayName
	if conflicted {
		name = ConflictMarker + name
	}

	return SafeAlias{
		Name:       name,
		Conflicted: conflicted,
	}
}

type SafeArc struct {
	Slug  string    `json:"slug"`
	Name  string    `json:"name"`
	Owner SafeAlias `json:"owner"`
}

type SafeLink struct {
	Kind      string    `json:"kind"`
	ToKey     string    `json:"to_key"`
	Owner     SafeAlias `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// SafePage is the fully resolved, display-safe page projection handed to
// templates and returned from the read API. Every owner reference on every
// sub-entity has been replaced with its SafeAlias projection.
type SafePage struct {
	Key        string     `json:"key"`
	Title      string     `json:"title"`
	Image      string     `json:"image"`
	AltText    string     `json:"alt_text"`
	Transcript string     `json:"transcript"`
	Arc        SafeArc    `json:"arc"`
	Owner      SafeAlias  `json:"owner"`
	ThemeMeta  string     `json:"theme_meta"`
	Next       []SafeLink `json:"next"`
	Previous   []SafeLink `json:"previous"`
	First      []SafeLink `json:"first"`
	At         time.Time  `json:"at"`
}

// SamplePage is the representative page used to exercise a template or
// theme body at save time, before a new version is accepted.
func SamplePage() SafePage {
	owner := SafeAlias{Name: "Sample Author"}

	return SafePage{
		Key:        "0000",
		Title:      "Sample Page",
		Image:      "sample.png",
		AltText:    "sample alt text",
		Transcript: "sample transcript",
		Arc:        SafeArc{Slug: "sample-arc", Name: "Sample Arc", Owner: owner},
		Owner:      owner,
		Next:       []SafeLink{{Kind: model.LinkNext, ToKey: "0001", Owner: owner}},
		Previous:   []SafeLink{{Kind: model.LinkPrevious, ToKey: "0001", Owner: owner}},
		First:      []SafeLink{{Kind: model.LinkFirst, ToKey: "0000", Owner: owner}},
		At:         time.Now().UTC(),
	}
}
