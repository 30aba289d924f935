package local

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.mp4")

	if err := SaveFile(strings.NewReader("video bytes"), path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "video bytes" {
		t.Fatalf("content = %q", b)
	}

	if err := SaveBytes([]byte("replaced"), path); err != nil {
		t.Fatal(err)
	}
	b, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "replaced" {
		t.Fatalf("content = %q", b)
	}

	if err := DeleteFile(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}
