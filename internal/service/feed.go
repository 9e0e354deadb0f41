package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/queue"
)

// FeedEntry is one recently saved page version.
type FeedEntry struct {
	PageKey string    `json:"page_key"`
	Title   string    `json:"title"`
	OwnerHK uint      `json:"owner_hk"`
	SavedAt time.Time `json:"saved_at"`
}

// FeedService keeps the most recent page saves in memory for the activity
// feed. Entries arrive over the page queue, so every process behind the
// same redis sees the same stream.
type FeedService struct {
	mu      sync.Mutex
	entries []FeedEntry
	size    int
}

func NewFeedService(size int) *FeedService {
	return &FeedService{size: size}
}

// Follow consumes page-save events until the context is done.
func (s *FeedService) Follow(ctx context.Context, q queue.PageQueue) error {
	saves, err := q.SubscribeSaves(ctx)
	if err != nil {
		return err
	}

	go func() {
		for page := range saves {
			s.push(page)
		}
		logrus.Info("page save feed stopped")
	}()

	return nil
}

func (s *FeedService) push(page *model.ComicPage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := FeedEntry{
		PageKey: page.PageKey,
		Title:   page.Title,
		OwnerHK: page.OwnerHK,
		SavedAt: page.CreatedAt,
	}

	s.entries = append([]FeedEntry{entry}, s.entries...)
	if len(s.entries) > s.size {
		s.entries = s.entries[:s.size]
	}
}

// Recent returns the feed newest first.
func (s *FeedService) Recent() []FeedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FeedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
