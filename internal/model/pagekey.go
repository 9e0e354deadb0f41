package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxPageKey is the highest representable page index.
	MaxPageKey = 0xffff

	pageKeyLen = 4
)

var (
	// ErrMalformedPageKey is returned for input that is not exactly four hex
	// digits. It is distinct from not-found so callers can give corrective
	// guidance.
	ErrMalformedPageKey = errors.New("malformed page key, expected 4 hex digits")
	// ErrPageKeysExhausted is returned when every key up to 0xffff is in use.
	ErrPageKeysExhausted = errors.New("page keys exhausted")
)

// FormatPageKey renders a page index as its canonical key, four lowercase
// zero-padded hex digits.
func FormatPageKey(n uint16) string {
	return fmt.Sprintf("%04x", n)
}

// CleanPageKey validates and canonicalizes a page key. Anything that is not
// four hex digits (case-insensitive) is ErrMalformedPageKey.
func CleanPageKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if len(key) != pageKeyLen {
		return "", ErrMalformedPageKey
	}

	n, err := strconv.ParseUint(key, 16, 16)
	if err != nil {
		return "", ErrMalformedPageKey
	}

	return FormatPageKey(uint16(n)), nil
}

// NextPageKey returns the key after the given maximum key in use, or
// ErrPageKeysExhausted once 0xffff is taken. An empty current maximum means
// an empty store and yields "0000".
func NextPageKey(maxInUse string) (string, error) {
	if maxInUse == "" {
		return FormatPageKey(0), nil
	}

	key, err := CleanPageKey(maxInUse)
	if err != nil {
		return "", err
	}

	n, _ := strconv.ParseUint(key, 16, 16)
	if n >= MaxPageKey {
		return "", ErrPageKeysExhausted
	}

	return FormatPageKey(uint16(n) + 1), nil
}
