package store

import (
	"os"
	"testing"

	"github.com/qtje/comic/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
