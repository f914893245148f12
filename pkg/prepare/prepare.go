// Package prepare turns raw extract text into files ready for
// annotation: one sentence per line, each followed by an empty {{}}
// annotation line.
package prepare

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// possibleEnd marks sentence-end candidates: . : ? ! followed by a
// blank or newline.
var possibleEnd = regexp.MustCompile(`[.:?!]\s*[ \n]`)

var trailingWhitespace = regexp.MustCompile(`\s*$`)

// protectionReplacements swap sentence-end indicator characters for
// super-rare ones while splitting, and back afterwards.
var protectionReplacements = [][2]string{
	{".", "⁙"},
	{":", "⁚"},
	{"?", "⁖"},
	{"!", "⁞"},
}

// nonSentenceEnds are sentence-end lookalikes that must not split.
var nonSentenceEnds = []*regexp.Regexp{
	regexp.MustCompile(`e\.g\.\s`),
	regexp.MustCompile(`et ?al.\s`),
	regexp.MustCompile(`https?:\s`),
	regexp.MustCompile(`i\.e\.\s`),
	regexp.MustCompile(`vs\.\s`),
	regexp.MustCompile(`\n# \d\d?\.?\s.+`), // heading with dotted number or pseudo-end in title
}

// markAsSentence are line structures that count as a whole sentence,
// e.g. "2.3.4. Acro: The Design Phase!".
var markAsSentence = []*regexp.Regexp{
	regexp.MustCompile(`\n(\d\d?\.){0,3}\d\d?\.?\s.+`),
}

// Preparer converts raw text files one by one and writes the prepared
// version to an output directory.
type Preparer struct {
	out    io.Writer
	logger *slog.Logger
}

// New creates a Preparer reporting its progress to out.
func New(out io.Writer, logger *slog.Logger) *Preparer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preparer{out: out, logger: logger}
}

// PrepareFiles converts each input file into outputDir. Existing output
// files are skipped, never overwritten.
func (p *Preparer) PrepareFiles(outputDir string, inputFiles []string) error {
	for _, inputFile := range inputFiles {
		if err := p.PrepareFile(inputFile, outputDir); err != nil {
			return err
		}
	}
	return nil
}

// PrepareFile converts a single file.
func (p *Preparer) PrepareFile(inputFile, outputDir string) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("cannot read '%s': %w", inputFile, err)
	}
	outputPath := filepath.Join(outputDir, filepath.Base(inputFile))
	if _, err := os.Stat(outputPath); err == nil {
		fmt.Fprintf(p.out, "#### '%s' exists! SKIPPED.\n", outputPath)
		return nil
	}
	fmt.Fprintf(p.out, "---- writing '%s'\n", outputPath)
	if err := os.WriteFile(outputPath, []byte(Prepared(string(data))), 0644); err != nil {
		return fmt.Errorf("cannot write '%s': %w", outputPath, err)
	}
	return nil
}

// Prepared splits txt into sentences and inserts '{{}}' lines.
func Prepared(txt string) string {
	// Save non-sentence-ends from being treated like sentence ends.
	rest := withProtection(txt)
	var result strings.Builder
	for len(rest) > 0 {
		loc := possibleEnd.FindStringIndex(rest)
		if loc == nil { // no further sentence end at all
			result.WriteString(replacementFor(rest))
			break
		}
		candidate := rest[:loc[1]]
		rest = rest[loc[1]:]
		result.WriteString(replacementFor(candidate))
	}
	return unprotect(result.String())
}

// replacementFor turns one sentence into what the coding file shows for
// it: trailing whitespace becomes "\n{{}}\n".
func replacementFor(candidate string) string {
	return trailingWhitespace.ReplaceAllString(candidate, "") + "\n{{}}\n"
}

func protect(txt string) string {
	for _, r := range protectionReplacements {
		txt = strings.ReplaceAll(txt, r[0], r[1])
	}
	return txt
}

func unprotect(txt string) string {
	for _, r := range protectionReplacements {
		txt = strings.ReplaceAll(txt, r[1], r[0])
	}
	return txt
}

func withProtection(txt string) string {
	for _, re := range nonSentenceEnds {
		txt = re.ReplaceAllStringFunc(txt, protect)
	}
	for _, re := range markAsSentence {
		txt = re.ReplaceAllStringFunc(txt, func(m string) string {
			return protect(m) + "."
		})
	}
	return txt
}
