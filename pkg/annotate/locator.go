// Package annotate finds annotation markup inside raw extract text and
// decomposes it into individual codings.
//
// Terminology:
//
//	annotation:    {{abc, defg:i1}}  on a line by itself
//	annotationish: ditto, with perhaps broken braces or not alone on the line
//	coding:        defg:i1
//	code:          defg
//	full suffix:   :flag:i1  (with leading separator)
//	suffix token:  i1  (or i1u1 or u1)
package annotate

import (
	"regexp"
	"strings"

	"github.com/qodalab/qoda/pkg/codebook"
	"github.com/qodalab/qoda/pkg/core"
)

var (
	// annotationishPattern distinguishes four mutually exclusive shapes:
	// a missing second closing brace, a missing second opening brace, a
	// well-formed annotation that shares its line with other content,
	// and a valid annotation alone on its line.
	annotationishPattern = regexp.MustCompile(
		`\n(\{\{[^}]*\})\n|\n(\{[^{]*\}\})\n|\n(.+\{\{.*\}\})|\n(\{\{.*\}\})\n`)

	// annotationAlonePattern locates the annotations that take part in
	// sentence pairing: alone on their line, non-greedy content.
	annotationAlonePattern = regexp.MustCompile(`(?s)\n(\{\{.*?\}\})\n`)

	emptyAnnotationPattern = regexp.MustCompile(`^\{\{\s*\}\}`)
)

// Annotationish is one match of annotationishPattern. Exactly one field
// is non-empty.
type Annotationish struct {
	ClosingBroken string // '{{abc}' - second closing brace missing
	OpeningBroken string // '{abc}}' - second opening brace missing
	Misplaced     string // annotation sharing its line with other text
	Valid         string // well-formed annotation alone on its line
}

// Annotations bundles the locator and parser operations with the
// codebook they consult.
type Annotations struct {
	Codebook *codebook.Codebook
}

// New creates the annotation service for the given codebook.
func New(cb *codebook.Codebook) *Annotations {
	return &Annotations{Codebook: cb}
}

// normalized makes sure text is newline-delimited on both ends, so that
// annotations on the first or last line are found as well.
func normalized(text string) string {
	if !strings.HasPrefix(text, "\n") {
		text = "\n" + text
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// FindAnnotationish scans text for anything that looks like an
// annotation, well-formed or not.
func (a *Annotations) FindAnnotationish(text string) []Annotationish {
	var result []Annotationish
	for _, m := range annotationishPattern.FindAllStringSubmatch(normalized(text), -1) {
		result = append(result, Annotationish{
			ClosingBroken: m[1],
			OpeningBroken: m[2],
			Misplaced:     m[3],
			Valid:         m[4],
		})
	}
	return result
}

// Classify returns a diagnostic message for an ill-formatted
// annotationish, or the validated annotation text for a well-formed one.
// Never both, never neither.
func Classify(m Annotationish) (msg string, annotation string) {
	switch {
	case m.ClosingBroken != "":
		return "second closing brace appears to be missing: '" + m.ClosingBroken + "'", ""
	case m.OpeningBroken != "":
		return "second opening brace appears to be missing: '" + m.OpeningBroken + "'", ""
	case m.Misplaced != "":
		return "{{}} annotation must be alone on a line: '" + m.Misplaced + "'", ""
	}
	return "", m.Valid
}

// FindSentenceAnnotationPairs returns the ordered sequence of
// (sentence, annotation) pairs of text. A sentence is the span between
// the start of the document (or the end of the previous annotation) and
// the next annotation that is alone on its own line. Pairing between two
// coders' files is positional; nothing here re-aligns by content.
func (a *Annotations) FindSentenceAnnotationPairs(text string) []core.AnnotatedSentence {
	text = normalized(text)
	var result []core.AnnotatedSentence
	pos := 0
	for idx := 1; pos < len(text); idx++ {
		loc := annotationAlonePattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		sentence := strings.Trim(text[pos:pos+loc[0]], "\n")
		annotation := text[pos+loc[2] : pos+loc[3]]
		result = append(result, core.AnnotatedSentence{
			Index:      idx,
			Sentence:   sentence,
			Annotation: annotation,
		})
		// Back up over the consumed trailing newline so that an
		// immediately following annotation line is still found.
		pos += loc[1] - 1
	}
	return result
}

// IsEmptyAnnotation reports whether the annotation's bracketed content
// is empty or whitespace only, meaning "not yet coded".
func IsEmptyAnnotation(annotation string) bool {
	return emptyAnnotationPattern.MatchString(annotation)
}
