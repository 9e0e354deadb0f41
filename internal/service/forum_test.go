package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumService_PostsPinToVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.TODO()

	forum := NewForumService(f.store)
	page := f.addPage(t, "before")

	_, err := forum.CreatePost(ctx, page.PageKey, "great page")
	require.NoError(t, err)

	posts, err := forum.ListPosts(ctx, page.PageKey)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "great page", posts[0].Text)

	// an edit starts a fresh discussion; old posts stay with the old version
	settle()
	in := f.input()
	in.Title = "after"
	_, err = f.pages.UpdatePage(ctx, page.PageKey, in, f.author.ID)
	require.NoError(t, err)

	posts, err = forum.ListPosts(ctx, page.PageKey)
	require.NoError(t, err)
	assert.Len(t, posts, 0)
}

func TestForumService_EmptyText(t *testing.T) {
	f := newFixture(t)

	forum := NewForumService(f.store)
	page := f.addPage(t, "page")

	_, err := forum.CreatePost(context.TODO(), page.PageKey, "")
	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")
}
