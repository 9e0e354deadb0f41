package cache

import (
	"context"
	"encoding/json"
	"time"
)

const (
	conflictedNamesKey = "alias:conflicted:names"
	conflictedNamesTTL = 10 * time.Minute
)

// ConflictCache holds the set of alias display names used by two or more
// distinct aliases. The jobs runner refreshes it; readers fall back to the
// store on a miss.
type ConflictCache struct {
	redis *Redis
}

func NewConflictCache(redis *Redis) *ConflictCache {
	return &ConflictCache{redis: redis}
}

func (c *ConflictCache) Put(ctx context.Context, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, conflictedNamesKey, data, conflictedNamesTTL)
}

func (c *ConflictCache) Get(ctx context.Context) (map[string]bool, error) {
	buf, err := c.redis.Get(ctx, conflictedNamesKey)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(buf, &names); err != nil {
		return nil, err
	}

	conflicted := make(map[string]bool, len(names))
	for _, name := range names {
		conflicted[name] = true
	}

	return conflicted, nil
}
