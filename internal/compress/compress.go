package compress

// Compress encodes and decodes cache payloads. Resolved page snapshots carry
// template and transcript text, so the cache stores them gzip-encoded; Nop
// is for tests.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

type Nop struct {
}

func NewNop() Nop {
	return Nop{}
}

func (n Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (n Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}
