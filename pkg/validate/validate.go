// Package validate checks annotated extract files against the codebook:
// annotation syntax errors, undefined codes, disallowed suffixes.
package validate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/qodalab/qoda/pkg/annotate"
	"github.com/qodalab/qoda/pkg/core"
	"github.com/qodalab/qoda/pkg/ux"
	"github.com/qodalab/qoda/pkg/whowhat"
)

// maxFileErrors bounds the number of reported problems per file; one
// final marker is emitted and the rest of the file is skipped.
const maxFileErrors = 3

// Checker validates single files; it has no cross-coder knowledge.
type Checker struct {
	annots *annotate.Annotations
	out    io.Writer
	logger *slog.Logger
}

// NewChecker creates a Checker writing its diagnostics to out.
func NewChecker(annots *annotate.Annotations, out io.Writer, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{annots: annots, out: out, logger: logger}
}

// CheckCoding is the single-coding gate: unknown codes fail, suffix
// checking is delegated to the codebook. A bare trailing '?' marks the
// coder's uncertainty and counts as the unmarked code.
func (c *Checker) CheckCoding(code, fullSuffix string) error {
	code = strings.TrimSuffix(code, "?")
	if fullSuffix == "?" {
		fullSuffix = ""
	}
	if !c.annots.Codebook.Exists(code) {
		return &core.CodingError{Code: code}
	}
	return c.annots.Codebook.CheckSuffix(code, fullSuffix)
}

// CheckFile reads one extract file and reports its problems to the
// checker's output. Returns the number of problems found.
func (c *Checker) CheckFile(file, coder, block string) int {
	data, err := os.ReadFile(file)
	if err != nil {
		c.logger.Warn("cannot read extract file", "file", file, "error", err)
		fmt.Fprintf(c.out, "---- %s  (%s, Block %s):\n%s\n",
			ux.File.Render(file), coder, block, ux.Error.Render(err.Error()))
		return 1
	}
	errors := c.contentErrors(string(data))
	if len(errors) > 0 {
		fmt.Fprintf(c.out, "---- %s  (%s, Block %s):\n%s\n",
			ux.File.Render(file), coder, block, strings.Join(errors, "\n"))
	}
	return len(errors)
}

// contentErrors accumulates the problem messages of one file's content,
// stopping once there are too many.
func (c *Checker) contentErrors(content string) []string {
	var errors []string
	for _, m := range c.annots.FindAnnotationish(content) {
		msg, annotation := annotate.Classify(m)
		if msg != "" {
			errors = append(errors, ux.Error.Render(msg))
		} else {
			errors = append(errors, c.codingErrors(annotation)...)
		}
		if len(errors) > maxFileErrors {
			errors = append(errors, "too many problems in this file, stopping.")
			return errors
		}
	}
	return errors
}

func (c *Checker) codingErrors(annotation string) []string {
	var errors []string
	for _, coding := range annotate.SplitIntoCodings(annotation) {
		if err := c.CheckCoding(coding.Code, coding.Suffix); err != nil {
			errors = append(errors, annotation+"\n"+ux.Error.Render(err.Error()))
		}
	}
	return errors
}

// CheckAll validates every file of every coder in the registry and
// returns the total problem count (uncapped).
func (c *Checker) CheckAll(reg *whowhat.Registry) int {
	total := 0
	for _, coder := range reg.Coders() {
		fmt.Fprintf(c.out, "\n#################### %s's: ####################\n\n", coder)
		for _, file := range reg.FilesOf(coder) {
			total += c.CheckFile(file, coder, reg.Block(file))
		}
	}
	return total
}

// ExitCode converts a problem count into the process exit signal:
// 0 means no problems; positive counts are capped to the single-byte
// exit code domain.
func ExitCode(problems int) int {
	if problems > 255 {
		return 255
	}
	return problems
}
