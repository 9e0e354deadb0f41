package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/compress"
	"github.com/qtje/comic/internal/render"
)

const snapshotTTL = 24 * time.Hour

func snapshotKey(pageKey string, at time.Time) string {
	return "page:snapshot:" + pageKey + "@" + at.UTC().Format(time.RFC3339Nano)
}

// SnapshotCache holds resolved page snapshots for explicit-timestamp reads.
// History is append-only, so a resolution pinned to a past instant never
// changes and is safe to cache; "now" reads must not go through here.
type SnapshotCache struct {
	redis   *Redis
	encoder compress.Compress
}

func NewSnapshotCache(redis *Redis) *SnapshotCache {
	return &SnapshotCache{redis: redis, encoder: compress.NewGZip()}
}

func (c *SnapshotCache) Get(ctx context.Context, pageKey string, at time.Time) (*render.SafePage, bool) {
	buf, err := c.redis.Get(ctx, snapshotKey(pageKey, at))
	if err != nil {
		return nil, false
	}

	data, err := c.encoder.Decode(buf)
	if err != nil {
		logrus.Errorf("error decoding cached snapshot: %v", err)
		return nil, false
	}

	page := &render.SafePage{}
	if err := json.Unmarshal(data, page); err != nil {
		logrus.Errorf("error unmarshalling cached snapshot: %v", err)
		return nil, false
	}

	return page, true
}

func (c *SnapshotCache) Put(ctx context.Context, pageKey string, at time.Time, page *render.SafePage) {
	data, err := json.Marshal(page)
	if err != nil {
		logrus.Errorf("error marshalling snapshot: %v", err)
		return
	}

	buf, err := c.encoder.Encode(data)
	if err != nil {
		logrus.Errorf("error encoding snapshot: %v", err)
		return
	}

	// cache errors are not load-bearing
	if err := c.redis.Set(ctx, snapshotKey(pageKey, at), buf, snapshotTTL); err != nil {
		logrus.Errorf("error caching snapshot: %v", err)
	}
}
