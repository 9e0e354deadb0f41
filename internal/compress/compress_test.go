package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGZip_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("<h1>{{.Title}}</h1>"), 64)

	g := NewGZip()
	encoded, err := g.Encode(payload)
	require.NoError(t, err)
	assert.Less(t, len(encoded), len(payload))

	decoded, err := g.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestGZip_DecodeGarbage(t *testing.T) {
	g := NewGZip()
	_, err := g.Decode([]byte("not a gzip stream"))
	assert.Error(t, err)
}

func TestNop_PassThrough(t *testing.T) {
	n := NewNop()

	encoded, err := n.Encode([]byte("as is"))
	require.NoError(t, err)
	assert.Equal(t, []byte("as is"), encoded)

	decoded, err := n.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte("as is"), decoded)
}
