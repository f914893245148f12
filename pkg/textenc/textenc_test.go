package textenc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFixFileLeavesValidUTF8Alone(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, nil)
	path := filepath.Join(t.TempDir(), "p71.txt")
	content := []byte("Gefühl, naïveté, 字\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.FixFile(path); err != nil {
		t.Fatalf("FixFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("valid UTF-8 file was changed")
	}
	if strings.Contains(buf.String(), "rewriting") {
		t.Errorf("output claims a rewrite:\n%s", buf.String())
	}
}

func TestFixFileRewritesWindows1252(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, nil)
	path := filepath.Join(t.TempDir(), "p71.txt")
	// "Gefühl" with 0xFC for ü, "don’t" with 0x92 for the curly quote.
	raw := []byte{'G', 'e', 'f', 0xFC, 'h', 'l', ' ', 'd', 'o', 'n', 0x92, 't', '\n'}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.FixFile(path); err != nil {
		t.Fatalf("FixFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.Valid(data) {
		t.Fatal("rewritten file is still not valid UTF-8")
	}
	if got, want := string(data), "Gefühl don’t\n"; got != want {
		t.Errorf("rewritten content = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "rewriting") {
		t.Errorf("output missing the rewrite notice:\n%s", buf.String())
	}
}

func TestFixFilesMissingFile(t *testing.T) {
	f := New(&bytes.Buffer{}, nil)
	err := f.FixFiles([]string{filepath.Join(t.TempDir(), "absent.txt")})
	if err == nil {
		t.Error("FixFiles() = nil, want error for missing file")
	}
}
