package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtje/comic/internal/model"
)

func saveMessage(t *testing.T, page *model.ComicPage) *redis.Message {
	t.Helper()
	data, err := json.Marshal(page)
	require.NoError(t, err)
	return &redis.Message{Channel: PageSaveQueue, Payload: string(data)}
}

func receive(t *testing.T, out <-chan *model.ComicPage) *model.ComicPage {
	t.Helper()
	select {
	case page := <-out:
		return page
	case <-time.After(time.Second):
		t.Fatal("no page save event arrived")
		return nil
	}
}

func TestBridgeSaves_DecodesAndCleansUp(t *testing.T) {
	in := make(chan *redis.Message, 2)
	out := make(chan *model.ComicPage)
	cleaned := false

	in <- saveMessage(t, &model.ComicPage{PageKey: "0000", Title: "one"})
	in <- saveMessage(t, &model.ComicPage{PageKey: "0001", Title: "two"})

	go bridgeSaves(context.Background(), in, out, func() { cleaned = true })

	assert.Equal(t, "one", receive(t, out).Title)
	assert.Equal(t, "two", receive(t, out).Title)

	// closing the subscription side drains and closes the output
	close(in)
	_, open := <-out
	assert.False(t, open)
	assert.True(t, cleaned)
}

func TestBridgeSaves_SkipsMalformedPayload(t *testing.T) {
	in := make(chan *redis.Message, 2)
	out := make(chan *model.ComicPage)

	in <- &redis.Message{Channel: PageSaveQueue, Payload: "not json"}
	in <- saveMessage(t, &model.ComicPage{PageKey: "0002", Title: "good"})

	go bridgeSaves(context.Background(), in, out, func() {})

	assert.Equal(t, "good", receive(t, out).Title)
}

func TestBridgeSaves_CancelClosesOutput(t *testing.T) {
	in := make(chan *redis.Message)
	out := make(chan *model.ComicPage)
	cleaned := false

	ctx, cancel := context.WithCancel(context.Background())
	go bridgeSaves(ctx, in, out, func() { cleaned = true })

	cancel()

	select {
	case _, open := <-out:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("output channel did not close on cancel")
	}
	assert.True(t, cleaned)
}

func TestBridgeSaves_CancelWhileSending(t *testing.T) {
	in := make(chan *redis.Message, 1)
	out := make(chan *model.ComicPage)

	in <- saveMessage(t, &model.ComicPage{PageKey: "0003", Title: "stuck"})

	ctx, cancel := context.WithCancel(context.Background())
	go bridgeSaves(ctx, in, out, func() {})

	// nobody reads out, so the bridge is blocked on the send
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case _, open := <-out:
		// either the pending page or the close, both end the stream
		if open {
			_, open = <-out
			assert.False(t, open)
		}
	case <-time.After(time.Second):
		t.Fatal("bridge did not exit while blocked on send")
	}
}
