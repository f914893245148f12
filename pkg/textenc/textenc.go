// Package textenc makes extract files conform to UTF-8. Files that do
// not decode as UTF-8 are reinterpreted as Windows-1252 and rewritten.
package textenc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Fixer checks files and rewrites the ones with a broken encoding.
type Fixer struct {
	out    io.Writer
	logger *slog.Logger
}

// New creates a Fixer reporting its progress to out.
func New(out io.Writer, logger *slog.Logger) *Fixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fixer{out: out, logger: logger}
}

// FixFiles checks each file and rewrites it in place when needed.
func (f *Fixer) FixFiles(files []string) error {
	for _, file := range files {
		if err := f.FixFile(file); err != nil {
			return err
		}
	}
	return nil
}

// FixFile reads one file; if it is not valid UTF-8, it is decoded as
// Windows-1252 and written back to the same filename as UTF-8.
func (f *Fixer) FixFile(file string) error {
	fmt.Fprintf(f.out, "reading '%s'\n", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read '%s': %w", file, err)
	}
	if utf8.Valid(data) {
		return nil
	}
	fmt.Fprintf(f.out, "==> rewriting '%s' from assumed Windows-1252 to UTF-8\n", file)
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return fmt.Errorf("cannot decode '%s' as Windows-1252: %w", file, err)
	}
	if err := os.WriteFile(file, decoded, 0644); err != nil {
		return fmt.Errorf("cannot rewrite '%s': %w", file, err)
	}
	f.logger.Debug("rewrote file as UTF-8", "file", file)
	return nil
}
