// Package codebook hides the knowledge about the codebook document
// syntax: which codes exist and which suffixes they allow.
//
// A code definition is an inline token of the form
//
//	code `somecode:flag:i1`
//
// anywhere in the document. Everything around such tokens is free text.
package codebook

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/qodalab/qoda/pkg/core"
)

// SuffixSeparator separates suffix tokens within a coding and within a
// suffix definition. Hardcoded in codeDefPattern.
const SuffixSeparator = ":"

// NoneTopic is the pseudo-topic for codes that have no topic.
const NoneTopic = "none"

// codeDefPattern finds one code definition, e.g. mycode:flag:i\d.
var codeDefPattern = regexp.MustCompile("(?i)code `([\\w-]+)((?::[^:`]+)+)?`")

// Codebook maps code names to their definitions and answers the
// classification questions that are independent of the mapping.
type Codebook struct {
	defs       map[string]core.CodeDef
	patterns   map[string]*regexp.Regexp
	ignoreCode string
	topics     map[string]string
}

// Load reads the codebook document at path. An unreadable document is a
// ConfigurationError; there is no fallback.
func Load(path string, ignoreCode string, topics map[string]string) (*Codebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.ConfigurationError{Path: path, Err: err}
	}
	cb, err := Parse(string(data), ignoreCode, topics)
	if err != nil {
		return nil, &core.ConfigurationError{Path: path, Err: err}
	}
	return cb, nil
}

// Parse builds a Codebook from the document text. When a code name is
// defined more than once, the later definition wins.
func Parse(document string, ignoreCode string, topics map[string]string) (*Codebook, error) {
	cb := &Codebook{
		defs:       make(map[string]core.CodeDef),
		patterns:   make(map[string]*regexp.Regexp),
		ignoreCode: ignoreCode,
		topics:     topics,
	}
	if cb.topics == nil {
		cb.topics = map[string]string{}
	}
	for _, m := range codeDefPattern.FindAllStringSubmatch(document, -1) {
		code, suffixDef := m[1], m[2]
		suffixDef = strings.TrimPrefix(suffixDef, SuffixSeparator)
		// The separator-delimited alternatives become a single regular
		// alternation; each suffix token must match it in full.
		alternation := strings.ReplaceAll(suffixDef, SuffixSeparator, "|")
		pattern, err := regexp.Compile("^(?:" + alternation + ")$")
		if err != nil {
			return nil, fmt.Errorf("bad suffix definition for code '%s': %w", code, err)
		}
		cb.defs[code] = core.CodeDef{Code: code, SuffixDef: suffixDef, SuffixPattern: alternation}
		cb.patterns[code] = pattern
	}
	return cb, nil
}

// Exists reports whether code is defined in the codebook.
func (cb *Codebook) Exists(code string) bool {
	_, ok := cb.defs[code]
	return ok
}

// Definition returns the CodeDef for code.
func (cb *Codebook) Definition(code string) (core.CodeDef, bool) {
	def, ok := cb.defs[code]
	return def, ok
}

// Codes returns the number of defined codes.
func (cb *Codebook) Codes() int { return len(cb.defs) }

// IsSuffixBearing reports whether code declares a suffix definition.
func (cb *Codebook) IsSuffixBearing(code string) bool {
	return cb.defs[code].SuffixDef != ""
}

// CheckSuffix validates fullSuffix against the suffix definition of
// code. An empty suffix is always OK; an unknown code fails with a
// CodingError. Otherwise each separator-delimited token is validated
// independently; the first offending token fails with a CodingError.
func (cb *Codebook) CheckSuffix(code, fullSuffix string) error {
	if fullSuffix == "" {
		return nil
	}
	def, ok := cb.defs[code]
	if !ok {
		return &core.CodingError{Code: code}
	}
	fullSuffix = strings.TrimPrefix(fullSuffix, SuffixSeparator)
	for _, suffix := range strings.Split(fullSuffix, SuffixSeparator) {
		if !cb.patterns[code].MatchString(suffix) {
			return &core.CodingError{Code: code, Suffix: suffix, Allowed: def.SuffixDef}
		}
	}
	return nil
}

// IgnoreCode is the code that silences coding differences.
func (cb *Codebook) IgnoreCode() string { return cb.ignoreCode }

// IsExtraCode reports whether code is an auxiliary marker rather than a
// content code.
func IsExtraCode(code string) bool {
	return strings.HasPrefix(code, "-")
}

// IsSubjectiveCode reports whether code is an extra code other than the
// ignore code.
func (cb *Codebook) IsSubjectiveCode(code string) bool {
	return strings.HasPrefix(code, "-") && code != cb.ignoreCode
}

// IsHeadingCode reports whether code marks a heading.
func IsHeadingCode(code string) bool {
	return strings.HasPrefix(code, "h-")
}

// Topic returns the code group of code, for a coarser analysis.
// Total: codes without a topic map to NoneTopic, never an error.
func (cb *Codebook) Topic(code string) string {
	if strings.HasPrefix(code, "-") {
		return NoneTopic // auxiliary codes have no topic
	}
	if strings.HasPrefix(code, "a-") || strings.HasPrefix(code, "h-") {
		return cb.Topic(code[2:])
	}
	if topic, ok := cb.topics[code]; ok {
		return topic
	}
	return NoneTopic
}
