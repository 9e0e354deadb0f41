package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtje/comic/internal/model"
)

func TestLinkService_OwnBucketCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")
	b := f.addPage(t, "b")
	c := f.addPage(t, "c")

	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, b.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	// the page author's own bucket is full at two
	_, err = f.links.CreateLink(ctx, home.PageKey, c.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "links")

	// an outsider still fits under the total cap
	bob := f.addAuthor(t, "bob")
	bobAlias := f.addAlias(t, "Bob", bob.ID)
	_, err = f.links.CreateLink(ctx, home.PageKey, c.PageKey, model.LinkNext, bobAlias.HK, bob.ID, false)
	require.NoError(t, err)
}

func TestLinkService_TotalCapDominates(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	bob := f.addAuthor(t, "bob")
	bobAlias := f.addAlias(t, "Bob", bob.ID)
	carol := f.addAuthor(t, "carol")
	carolAlias := f.addAlias(t, "Carol", carol.ID)
	dave := f.addAuthor(t, "dave")
	daveAlias := f.addAlias(t, "Dave", dave.ID)

	// two outsiders fill the foreign bucket, the page author takes the third
	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, bobAlias.HK, bob.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, carolAlias.HK, carol.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	// the author's own bucket has room, but three links is the ceiling
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)

	// and so does any outsider
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, daveAlias.HK, dave.ID, false)
	require.ErrorAs(t, err, &verr)
}

func TestLinkService_KindsCountSeparately(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")
	b := f.addPage(t, "b")

	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, b.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	// next links being capped does not touch the previous bucket
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkPrevious, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)
}

func TestLinkService_FirstLinksUnguarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	for i := 0; i < 5; i++ {
		_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkFirst, f.alias.HK, f.author.ID, false)
		require.NoError(t, err)
	}
}

func TestLinkService_Reciprocal(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	link, err := f.links.CreateLink(ctx, a.PageKey, home.PageKey, model.LinkPrevious, f.alias.HK, f.author.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.LinkPrevious, link.Kind)

	back, err := f.store.ListActiveLinks(ctx, home.PageKey, model.LinkNext)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, a.PageKey, back[0].ToKey)
}

func TestLinkService_ReciprocalGuardLeavesPrimary(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")
	b := f.addPage(t, "b")
	c := f.addPage(t, "c")

	// fill home's next bucket on the author side
	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, b.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	// the primary previous link lands, the reciprocal next is rejected
	_, err = f.links.CreateLink(ctx, c.PageKey, home.PageKey, model.LinkPrevious, f.alias.HK, f.author.ID, true)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)

	prev, err := f.store.ListActiveLinks(ctx, c.PageKey, model.LinkPrevious)
	require.NoError(t, err)
	assert.Len(t, prev, 1)

	next, err := f.store.ListActiveLinks(ctx, home.PageKey, model.LinkNext)
	require.NoError(t, err)
	assert.Len(t, next, 2)
}

func TestLinkService_InvalidKind(t *testing.T) {
	f := newFixture(t)

	_, err := f.links.CreateLink(context.TODO(), "0000", "0001", "x", f.alias.HK, f.author.ID, false)
	assert.ErrorIs(t, err, ErrInvalidLinkKind)
}

func TestLinkService_ForeignAliasRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	bob := f.addAuthor(t, "bob")

	// bob acting through alice's alias
	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, bob.ID, false)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "owner")
}

func TestLinkService_GuardDecidedBeforeOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	bob := f.addAuthor(t, "bob")
	bobAlias := f.addAlias(t, "Bob", bob.ID)
	carol := f.addAuthor(t, "carol")
	carolAlias := f.addAlias(t, "Carol", carol.ID)

	// fill the page to the total cap
	_, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, bobAlias.HK, bob.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, carolAlias.HK, carol.ID, false)
	require.NoError(t, err)
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	// a request that also acts through a foreign alias reports the limit,
	// not the ownership problem
	_, err = f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, bob.ID, false)
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "links")
	assert.NotContains(t, verr.Fields, "owner")
}

func TestLinkService_RemovePermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	home := f.addPage(t, "home")
	a := f.addPage(t, "a")

	link, err := f.links.CreateLink(ctx, home.PageKey, a.PageKey, model.LinkNext, f.alias.HK, f.author.ID, false)
	require.NoError(t, err)

	bob := f.addAuthor(t, "bob")
	err = f.links.RemoveLink(ctx, link.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, f.links.RemoveLink(ctx, link.ID, f.author.ID))
}
