package batcher

import (
	"os"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
