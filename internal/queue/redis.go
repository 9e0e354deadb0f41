package queue

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/cache"
	"github.com/qtje/comic/internal/model"
)

var _ PageQueue = (*RedisPageQueue)(nil)

type RedisPageQueue struct {
	redis *cache.Redis
}

func NewRedisPageQueue(redis *cache.Redis) *RedisPageQueue {
	return &RedisPageQueue{redis: redis}
}

func (q *RedisPageQueue) PublishSave(ctx context.Context, page *model.ComicPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return q.redis.Publish(ctx, PageSaveQueue, data)
}

func (q *RedisPageQueue) SubscribeSaves(ctx context.Context) (<-chan *model.ComicPage, error) {
	sub := q.redis.Subscribe(ctx, PageSaveQueue)
	out := make(chan *model.ComicPage)

	go bridgeSaves(ctx, sub.Channel(), out, func() {
		if err := sub.Close(); err != nil {
			logrus.Errorf("error closing page queue subscription: %v", err)
		}
	})

	return out, nil
}

// bridgeSaves decodes pub/sub payloads onto the typed channel until the
// context is done or the subscription channel closes. The output channel is
// closed on the way out so consumers can range over it.
func bridgeSaves(ctx context.Context, in <-chan *redis.Message, out chan<- *model.ComicPage, cleanup func()) {
	defer close(out)
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}

			page := &model.ComicPage{}
			if err := json.Unmarshal([]byte(msg.Payload), page); err != nil {
				logrus.Errorf("error decoding page save event: %v", err)
				continue
			}

			select {
			case out <- page:
			case <-ctx.Done():
				return
			}
		}
	}
}
