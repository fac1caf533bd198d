package localfs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveThenOpenRoundTrip(t *testing.T) {
	archive, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	content := []byte("%PDF-1.4 fake")
	if err := archive.Save(context.Background(), "abc_ddt.pdf", bytes.NewReader(content)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader, err := archive.Open(context.Background(), "abc_ddt.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	archive, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"../outside.pdf", "/etc/passwd", "a/../../b.pdf"} {
		if err := archive.Save(context.Background(), key, strings.NewReader("x")); err == nil {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}
