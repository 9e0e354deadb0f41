package service

import (
	"context"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/store"
)

func NewForumService(store store.Store) *ForumService {
	return &ForumService{store: store}
}

// ForumService attaches reader posts to the page version that was current
// when the post was made, so an edit does not move old discussion.
type ForumService struct {
	store store.Store
}

func (s *ForumService) CreatePost(ctx context.Context, pageKey, text string) (*model.ForumPost, error) {
	pageKey, err := model.CleanPageKey(pageKey)
	if err != nil {
		return nil, err
	}

	verr := NewValidationError()
	if text == "" {
		verr.Add("text", "text is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	page, err := s.store.GetLatestPage(ctx, pageKey)
	if err != nil {
		return nil, orNotFound(err)
	}

	post := &model.ForumPost{
		Text:      text,
		SourceRow: page.RowID,
	}
	if err := s.store.CreateForumPost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns the posts attached to the current version of a page.
func (s *ForumService) ListPosts(ctx context.Context, pageKey string) ([]*model.ForumPost, error) {
	pageKey, err := model.CleanPageKey(pageKey)
	if err != nil {
		return nil, err
	}

	page, err := s.store.GetLatestPage(ctx, pageKey)
	if err != nil {
		return nil, orNotFound(err)
	}

	return s.store.ListForumPosts(ctx, page.RowID)
}
