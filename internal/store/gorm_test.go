package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/tester"
)

// settle keeps successive saves from landing on the same clock tick; the
// ordering invariant needs strictly increasing created_at per hk.
func settle() {
	time.Sleep(5 * time.Millisecond)
}

func newAuthor(t *testing.T, g *GormStore, name string) *model.Author {
	t.Helper()
	author := &model.Author{ID: uuid.New().String(), Name: name}
	require.NoError(t, g.CreateAuthor(context.TODO(), author))
	return author
}

func newAlias(t *testing.T, g *GormStore, name, authorID string) *model.Alias {
	t.Helper()
	alias := &model.Alias{DisplayName: name, AuthorID: authorID}
	require.NoError(t, g.SaveAlias(context.TODO(), alias))
	return alias
}

func TestGormStore_CopyOnWrite(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	author := newAuthor(t, g, "alice")

	alias := &model.Alias{DisplayName: "v1", AuthorID: author.ID}
	require.NoError(t, g.SaveAlias(ctx, alias))

	// first save backfills hk from the row's own storage identity
	assert.NotZero(t, alias.RowID)
	assert.Equal(t, alias.RowID, alias.HK)

	hk := alias.HK
	firstRow := alias.RowID

	settle()
	alias.DisplayName = "v2"
	require.NoError(t, g.SaveAlias(ctx, alias))

	// the "update" produced a fresh row under the same hk
	assert.NotEqual(t, firstRow, alias.RowID)
	assert.Equal(t, hk, alias.HK)

	settle()
	alias.DisplayName = "v3"
	require.NoError(t, g.SaveAlias(ctx, alias))

	var rows []*model.Alias
	require.NoError(t, tester.TestDB().Where("hk = ?", hk).Order("created_at ASC").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, "v1", rows[0].DisplayName)
	assert.Equal(t, "v2", rows[1].DisplayName)
	assert.Equal(t, "v3", rows[2].DisplayName)
	assert.True(t, rows[0].CreatedAt.Before(rows[1].CreatedAt))
	assert.True(t, rows[1].CreatedAt.Before(rows[2].CreatedAt))

	latest, err := g.GetLatestAlias(ctx, hk)
	require.NoError(t, err)
	assert.Equal(t, "v3", latest.DisplayName)

	// as-of reads pick the version current at the instant
	midway := rows[1].CreatedAt.Add(rows[2].CreatedAt.Sub(rows[1].CreatedAt) / 2)
	at, err := g.GetAliasAt(ctx, hk, midway)
	require.NoError(t, err)
	assert.Equal(t, "v2", at.DisplayName)

	// before the first version the entity did not exist
	_, err = g.GetAliasAt(ctx, hk, rows[0].CreatedAt.Add(-time.Second))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormStore_AllLatest(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	alice := newAuthor(t, g, "alice")
	bob := newAuthor(t, g, "bob")

	a1 := newAlias(t, g, "a1", alice.ID)
	settle()
	a1.DisplayName = "a1-renamed"
	require.NoError(t, g.SaveAlias(ctx, a1))
	settle()
	a2 := newAlias(t, g, "a2", alice.ID)
	settle()
	b1 := newAlias(t, g, "b1", bob.ID)

	all, err := g.ListLatestAliases(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// exactly one row per hk, hk descending, each the newest version
	assert.Equal(t, b1.HK, all[0].HK)
	assert.Equal(t, a2.HK, all[1].HK)
	assert.Equal(t, a1.HK, all[2].HK)
	assert.Equal(t, "a1-renamed", all[2].DisplayName)

	mine, err := g.ListLatestAliases(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestGormStore_OwnedScope(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	alice := newAuthor(t, g, "alice")
	bob := newAuthor(t, g, "bob")
	aliceAlias := newAlias(t, g, "Alice", alice.ID)
	bobAlias := newAlias(t, g, "Bob", bob.ID)

	require.NoError(t, g.SaveArc(ctx, &model.ComicArc{SlugName: "one", DisplayName: "One", OwnerHK: aliceAlias.HK}))
	require.NoError(t, g.SaveArc(ctx, &model.ComicArc{SlugName: "two", DisplayName: "Two", OwnerHK: bobAlias.HK}))

	arcs, err := g.ListLatestArcs(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, "one", arcs[0].SlugName)

	arcs, err = g.ListLatestArcs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, arcs, 2)
}

func TestGormStore_NextPageKey(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	next, err := g.NextPageKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0000", next)

	for _, key := range []string{"0000", "0001", "0003"} {
		require.NoError(t, g.SavePage(ctx, &model.ComicPage{PageKey: key, Title: key}))
	}

	next, err = g.NextPageKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0004", next)

	require.NoError(t, g.SavePage(ctx, &model.ComicPage{PageKey: "ffff", Title: "last"}))
	_, err = g.NextPageKey(ctx)
	assert.ErrorIs(t, err, model.ErrPageKeysExhausted)
}

func TestGormStore_PageVersions(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	page := &model.ComicPage{PageKey: "0001", Title: "before"}
	require.NoError(t, g.SavePage(ctx, page))
	firstRow := page.RowID

	settle()
	page.Title = "after"
	require.NoError(t, g.SavePage(ctx, page))
	assert.NotEqual(t, firstRow, page.RowID)
	assert.Equal(t, "0001", page.PageKey)

	latest, err := g.GetLatestPage(ctx, "0001")
	require.NoError(t, err)
	assert.Equal(t, "after", latest.Title)

	var first model.ComicPage
	require.NoError(t, tester.TestDB().First(&first, firstRow).Error)

	at, err := g.GetPageAt(ctx, "0001", first.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, "before", at.Title)
}

func TestGormStore_SoftDeletedLinks(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	link := &model.ComicLink{FromKey: "0001", ToKey: "0002", Kind: model.LinkNext}
	require.NoError(t, g.CreateLink(ctx, link))

	t1 := link.CreatedAt
	t3 := t1.Add(2 * time.Hour)
	require.NoError(t, g.SoftDeleteLink(ctx, link.ID, t3))

	// live between creation and deletion
	links, err := g.ListLinksFrom(ctx, "0001", t1.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, links, 1)

	// gone at and after the deletion instant
	links, err = g.ListLinksFrom(ctx, "0001", t3)
	require.NoError(t, err)
	assert.Len(t, links, 0)

	// never physically removed
	row, err := g.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, row.DeletedAt.Valid)

	// not yet created as of a past instant
	links, err = g.ListLinksFrom(ctx, "0001", t1.Add(-time.Second))
	require.NoError(t, err)
	assert.Len(t, links, 0)
}
