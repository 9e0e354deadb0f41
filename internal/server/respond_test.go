package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAt(t *testing.T) {
	cases := []struct {
		raw    string
		pinned bool
		want   time.Time
		fails  bool
	}{
		{raw: "", pinned: false},
		{raw: "2024-05-01T12:00:00Z", pinned: true, want: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{raw: "2024-05-01T12:00:00.5Z", pinned: true, want: time.Date(2024, 5, 1, 12, 0, 0, 500000000, time.UTC)},
		{raw: "2024-05-01T12:00:00", pinned: true, want: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{raw: "2024-05-01", pinned: true, want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "yesterday", fails: true},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", "/v1/pages/0000", nil)
		if c.raw != "" {
			q := r.URL.Query()
			q.Set("at", c.raw)
			r.URL.RawQuery = q.Encode()
		}

		at, pinned, err := parseAt(r)
		if c.fails {
			assert.Error(t, err, c.raw)
			continue
		}

		require.NoError(t, err, c.raw)
		assert.Equal(t, c.pinned, pinned, c.raw)
		if c.pinned {
			assert.Equal(t, c.want, at, c.raw)
		} else {
			assert.WithinDuration(t, time.Now().UTC(), at, time.Second)
		}
	}
}
