package queue

import (
	"context"

	"github.com/qtje/comic/internal/model"
)

var PageSaveQueue = "page:save:queue"

// PageQueue carries page-save events to external consumers (feed
// generation, forum notifications).
type PageQueue interface {
	// PublishSave announces a freshly persisted page version.
	PublishSave(ctx context.Context, page *model.ComicPage) error
	// SubscribeSaves streams page-save events until the context is done.
	SubscribeSaves(ctx context.Context) (<-chan *model.ComicPage, error)
}
