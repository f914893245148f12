package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qodalab/qoda/pkg/annotate"
	"github.com/qodalab/qoda/pkg/codebook"
)

func testChecker(t *testing.T) (*Checker, *bytes.Buffer) {
	t.Helper()
	cb, err := codebook.Parse(
		"code `a`\ncode `b:flag:i\\d+u\\d*:i\\d*u\\d+`\ncode `-doubt`\ncode `-ignorediff`\n",
		"-ignorediff", nil)
	if err != nil {
		t.Fatalf("codebook.Parse() error = %v", err)
	}
	var buf bytes.Buffer
	return NewChecker(annotate.New(cb), &buf, nil), &buf
}

func TestCheckCoding(t *testing.T) {
	c, _ := testChecker(t)
	tests := []struct {
		name    string
		code    string
		suffix  string
		wantErr bool
	}{
		{"known code", "a", "", false},
		{"unknown code", "zz", "", true},
		{"valid suffix", "b", ":i2u1", false},
		{"invalid suffix", "b", ":nope", true},
		{"suffix on suffixless code", "a", ":i1", true},
		{"uncertainty marker on code", "a?", "", false},
		{"uncertainty marker as suffix", "b", "?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.CheckCoding(tt.code, tt.suffix)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckCoding(%q, %q) error = %v, wantErr %v", tt.code, tt.suffix, err, tt.wantErr)
			}
		})
	}
}

func writeExtract(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "p71.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckFileClean(t *testing.T) {
	c, buf := testChecker(t)
	file := writeExtract(t, "First sentence.\n{{a}}\nSecond sentence.\n{{b:i1}}\n")
	if got := c.CheckFile(file, "ada", "1"); got != 0 {
		t.Errorf("CheckFile() = %d, want 0\noutput:\n%s", got, buf.String())
	}
	if buf.Len() != 0 {
		t.Errorf("clean file produced output:\n%s", buf.String())
	}
}

func TestCheckFileReportsProblems(t *testing.T) {
	c, buf := testChecker(t)
	file := writeExtract(t, "First sentence.\n{{zz}}\nSecond sentence.\n{{abc}\n")
	if got := c.CheckFile(file, "ada", "1"); got != 2 {
		t.Errorf("CheckFile() = %d, want 2\noutput:\n%s", got, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "(ada, Block 1):") {
		t.Errorf("output missing the file header:\n%s", out)
	}
	if !strings.Contains(out, "unknown code: 'zz'") {
		t.Errorf("output missing the unknown-code message:\n%s", out)
	}
	if !strings.Contains(out, "second closing brace appears to be missing") {
		t.Errorf("output missing the broken-brace message:\n%s", out)
	}
}

func TestCheckFileMissing(t *testing.T) {
	c, buf := testChecker(t)
	file := filepath.Join(t.TempDir(), "absent.txt")
	if got := c.CheckFile(file, "ada", "1"); got != 1 {
		t.Errorf("CheckFile() = %d, want 1", got)
	}
	if !strings.Contains(buf.String(), "(ada, Block 1):") {
		t.Errorf("output missing the file header:\n%s", buf.String())
	}
}

func TestContentErrorsStopAfterTooMany(t *testing.T) {
	c, _ := testChecker(t)
	content := "S1.\n{{z1}}\nS2.\n{{z2}}\nS3.\n{{z3}}\nS4.\n{{z4}}\nS5.\n{{z5}}\nS6.\n{{z6}}\n"
	errs := c.contentErrors(content)
	last := errs[len(errs)-1]
	if last != "too many problems in this file, stopping." {
		t.Errorf("last message = %q, want the stop marker", last)
	}
	if len(errs) != maxFileErrors+2 {
		t.Errorf("len(errs) = %d, want %d: cap plus overflow entry plus stop marker", len(errs), maxFileErrors+2)
	}
}

func TestSuffixErrorShowsAnnotation(t *testing.T) {
	c, buf := testChecker(t)
	file := writeExtract(t, "A sentence.\n{{b:nope}}\n")
	if got := c.CheckFile(file, "ada", "1"); got != 1 {
		t.Errorf("CheckFile() = %d, want 1", got)
	}
	out := buf.String()
	if !strings.Contains(out, "{{b:nope}}") {
		t.Errorf("output missing the offending annotation:\n%s", out)
	}
	if !strings.Contains(out, "suffix 'nope' not allowed for code 'b'") {
		t.Errorf("output missing the suffix message:\n%s", out)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		problems int
		want     int
	}{
		{0, 0},
		{1, 1},
		{255, 255},
		{1000, 255},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.problems); got != tt.want {
			t.Errorf("ExitCode(%d) = %d, want %d", tt.problems, got, tt.want)
		}
	}
}
