// Package compare walks two coders' annotation sequences in lockstep
// and flags their discrepancies. It knows about allowed and non-allowed
// discrepancies and about the code for silencing them.
package compare

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/qodalab/qoda/pkg/annotate"
	"github.com/qodalab/qoda/pkg/core"
	"github.com/qodalab/qoda/pkg/ux"
)

// Context identifies one comparison job for reporting.
type Context struct {
	File1  string
	Coder1 string
	File2  string
	Coder2 string
	Block  string
}

// Comparator applies the divergence rule cascade to pairs of files.
// It owns the mutable reporting state: the running divergence count,
// header de-duplication and the once-per-run all-clear marker.
type Comparator struct {
	annots       *annotate.Annotations
	maxCountDiff int
	out          io.Writer
	logger       *slog.Logger

	msgCount int
	lastMsg  string
	// extraLineDone tracks whether one agreeing sentence has already
	// been shown since the previous problem.
	extraLineDone bool
}

// New creates a Comparator. maxCountDiff is how much the two coders'
// i/u gap counts may differ without a message.
func New(annots *annotate.Annotations, maxCountDiff int, out io.Writer, logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparator{
		annots:       annots,
		maxCountDiff: maxCountDiff,
		out:          out,
		logger:       logger,
	}
}

// Divergences returns the raw running divergence count.
func (c *Comparator) Divergences() int { return c.msgCount }

// ExitCode converts the divergence count into the process exit signal.
// Every unordered file pair is visited once per coder, so the raw count
// is halved to undo the double counting, then capped.
func (c *Comparator) ExitCode() int {
	count := c.msgCount / 2
	if count > 255 {
		return 255
	}
	return count
}

// CompareFiles reads both files of a job and compares their annotation
// sequences.
func (c *Comparator) CompareFiles(ctx Context) error {
	content1, err := os.ReadFile(ctx.File1)
	if err != nil {
		return fmt.Errorf("cannot read '%s': %w", ctx.File1, err)
	}
	content2, err := os.ReadFile(ctx.File2)
	if err != nil {
		return fmt.Errorf("cannot read '%s': %w", ctx.File2, err)
	}
	pairs1 := c.annots.FindSentenceAnnotationPairs(string(content1))
	pairs2 := c.annots.FindSentenceAnnotationPairs(string(content2))
	c.CompareSentences(ctx, pairs1, pairs2)
	return nil
}

// CompareSentences applies the rule cascade position by position, zip
// semantics: it stops at the shorter sequence's length. Lower rules
// pre-empt higher ones; misalignment and incompleteness abort the whole
// pair because later positions are unreliable.
func (c *Comparator) CompareSentences(ctx Context, sentences1, sentences2 []core.AnnotatedSentence) {
	c.lastMsg = ""
	c.extraLineDone = false
	ignore := c.annots.Codebook.IgnoreCode()

	n := len(sentences1)
	if len(sentences2) < n {
		n = len(sentences2)
	}
	for i := 0; i < n; i++ {
		as1, as2 := sentences1[i], sentences2[i]
		// ----- check for non-parallel codings:
		if as1.Sentence != as2.Sentence {
			c.printMsg(ctx, "Annotations should be at parallel points in the files, but are at different points here:",
				c.of1(ctx, "\""+as1.Sentence+"\""), c.of2(ctx, "\""+as2.Sentence+"\""))
			break
		}
		// ----- check for incomplete annotation:
		if annotate.IsEmptyAnnotation(as1.Annotation) || annotate.IsEmptyAnnotation(as2.Annotation) {
			c.printMsg(ctx, "Incomplete annotation found, skipping rest of this file pair:",
				numberedSentence(as1), c.of1(ctx, as1.Annotation), c.of2(ctx, as2.Annotation))
			break
		}
		// ----- check for double ignore:
		set1 := c.annots.CodingsOf(as1.Annotation, true, true)
		set2 := c.annots.CodingsOf(as2.Annotation, true, true)
		if set1[ignore] && set2[ignore] {
			c.printMsg(ctx, fmt.Sprintf("Code '%s' should only appear in one coding, never in both as it does here:", ignore),
				numberedSentence(as1), c.of1(ctx, as1.Annotation), c.of2(ctx, as2.Annotation))
			continue
		}
		// ----- check for ignore:
		if set1[ignore] || set2[ignore] {
			// Do not report possible discrepancies. We do not check for a
			// superfluous ignore code, because that does not scale for
			// more than 2 coders per sentence.
			continue
		}
		// ----- check for code discrepancies:
		if !equalSets(set1, set2) {
			c.printMsg(ctx, "The sets of codes applied are different, please check:",
				numberedSentence(as1), c.of1(ctx, as1.Annotation), c.of2(ctx, as2.Annotation))
			continue
		}
		// ----- check for count discrepancies:
		before := c.msgCount
		c.checkSuffixCounts(ctx, as1, as2)
		if c.msgCount > before {
			continue
		}
		c.printExtra(numberedSentence(as1), c.of1OK(ctx, as1.Annotation), c.of2OK(ctx, as2.Annotation))
	}
}

// checkSuffixCounts fires once per common suffix-bearing code whose i or
// u count differs by more than the tolerance.
func (c *Comparator) checkSuffixCounts(ctx Context, as1, as2 core.AnnotatedSentence) {
	codes, counts := c.annots.CodesWithIUCounts(as1.Annotation, as2.Annotation)
	for _, code := range codes {
		cc := counts[code]
		iDiff := abs(cc.I1-cc.I2) > c.maxCountDiff
		uDiff := abs(cc.U1-cc.U2) > c.maxCountDiff
		var what string
		switch {
		case iDiff && uDiff:
			what = "i&u"
		case iDiff:
			what = "informativeness"
		case uDiff:
			what = "understandability"
		default:
			continue
		}
		c.printMsg(ctx, fmt.Sprintf("%s: Very different numbers of %s gaps, please reconsider:", code, what),
			numberedSentence(as1), c.of1(ctx, as1.Annotation), c.of2(ctx, as2.Annotation))
	}
}

// printMsg shows a sentence with a problem. The descriptive header is
// suppressed when it repeats the previous one; the detail lines always
// print.
func (c *Comparator) printMsg(ctx Context, msg string, items ...string) {
	if msg != c.lastMsg {
		fmt.Fprintf(c.out, "\n%s\n", ux.Header.Render("##### "+msg))
		fmt.Fprintf(c.out, "%s  (%s, Block %s)\n", ux.File.Render(ctx.File1), ctx.Coder1, ctx.Block)
		fmt.Fprintf(c.out, "%s  (%s, Block %s)\n", ux.File.Render(ctx.File2), ctx.Coder2, ctx.Block)
		c.lastMsg = msg
	}
	for _, item := range items {
		fmt.Fprintln(c.out, item)
	}
	c.extraLineDone = false
	c.msgCount++
}

// printExtra shows one agreeing sentence, at most once between any two
// problems, so routine confirmations do not flood the output.
func (c *Comparator) printExtra(items ...string) {
	if c.extraLineDone {
		return
	}
	for _, item := range items {
		fmt.Fprintln(c.out, item)
	}
	c.extraLineDone = true
}

func numberedSentence(as core.AnnotatedSentence) string {
	return fmt.Sprintf("[%d] %s", as.Index, ux.Bold.Render(as.Sentence))
}

func (c *Comparator) of1(ctx Context, msg string) string {
	return fmt.Sprintf("%s  (%s)", ux.Error.Render(msg), ctx.Coder1)
}

func (c *Comparator) of2(ctx Context, msg string) string {
	return fmt.Sprintf("%s  (%s)", ux.Error.Render(msg), ctx.Coder2)
}

func (c *Comparator) of1OK(ctx Context, msg string) string {
	return fmt.Sprintf("%s  -OK- (%s)", ux.OK.Render(msg), ctx.Coder1)
}

func (c *Comparator) of2OK(ctx Context, msg string) string {
	return fmt.Sprintf("%s  -OK- (%s)", ux.OK.Render(msg), ctx.Coder2)
}

func equalSets(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
