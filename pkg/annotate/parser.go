package annotate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/qodalab/qoda/pkg/core"
)

var (
	// contentPattern extracts codings from an annotation's interior,
	// ignoring commas, blanks and any other non-word garbage symbols.
	contentPattern = regexp.MustCompile(`([\w-]+)((?::[\w\d]+)*)`)

	bareCodePattern = regexp.MustCompile(`^-?([\w-]+)(:[\w\d]*)?`)

	iCountPattern = regexp.MustCompile(`i(\d+)`)
	uCountPattern = regexp.MustCompile(`u(\d+)`)
)

// SplitIntoCodings decomposes one annotation into its codings in order
// of appearance, e.g. "{{a, b:i1}}" into [(a, ""), (b, ":i1")].
func SplitIntoCodings(annotation string) []core.Coding {
	annotation = strings.TrimSuffix(strings.TrimPrefix(annotation, "{{"), "}}")
	var result []core.Coding
	for _, m := range contentPattern.FindAllStringSubmatch(annotation, -1) {
		result = append(result, core.Coding{Code: m[1], Suffix: m[2]})
	}
	return result
}

// CodingsOf returns the set of coding strings of annotation. Order and
// repetition are irrelevant for agreement checking, hence a set.
// With stripSuffixes, only the bare codes remain; with stripSubjective,
// subjective extra codes are excluded entirely.
func (a *Annotations) CodingsOf(annotation string, stripSuffixes, stripSubjective bool) map[string]bool {
	result := make(map[string]bool)
	for _, m := range contentPattern.FindAllStringSubmatch(annotation, -1) {
		code, suffix := m[1], m[2]
		if stripSubjective && a.Codebook.IsSubjectiveCode(code) {
			continue
		}
		if stripSuffixes {
			result[code] = true
		} else {
			result[code+suffix] = true
		}
	}
	return result
}

// SortedCodings returns the elements of a codings set in stable order.
func SortedCodings(set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for coding := range set {
		result = append(result, coding)
	}
	sort.Strings(result)
	return result
}

// BareCodeName strips the leading dash and any trailing suffix off a
// coding, e.g. "-reason:i1" becomes "reason".
func BareCodeName(coding string) string {
	m := bareCodePattern.FindStringSubmatch(coding)
	if m == nil {
		return ""
	}
	return m[1]
}

// SuffixCounts extracts the informativeness and understandability counts
// from a suffix such as "i2u1". An absent count is 0.
func SuffixCounts(suffix string) (iCount, uCount int) {
	if m := iCountPattern.FindStringSubmatch(suffix); m != nil {
		iCount, _ = strconv.Atoi(m[1])
	}
	if m := uCountPattern.FindStringSubmatch(suffix); m != nil {
		uCount, _ = strconv.Atoi(m[1])
	}
	return iCount, uCount
}

// CodesWithIUCounts collects, for every code that appears in both
// annotations and is suffix-bearing per the codebook, the i/u counts on
// each side. Keys are returned sorted for deterministic reporting.
func (a *Annotations) CodesWithIUCounts(annotation1, annotation2 string) ([]string, map[string]core.IUCounts) {
	suffixes1 := firstSuffixByCode(annotation1)
	suffixes2 := firstSuffixByCode(annotation2)
	counts := make(map[string]core.IUCounts)
	var codes []string
	for code, suffix1 := range suffixes1 {
		suffix2, common := suffixes2[code]
		if !common || !a.Codebook.IsSuffixBearing(code) {
			continue
		}
		i1, u1 := SuffixCounts(suffix1)
		i2, u2 := SuffixCounts(suffix2)
		counts[code] = core.IUCounts{I1: i1, U1: u1, I2: i2, U2: u2}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, counts
}

func firstSuffixByCode(annotation string) map[string]string {
	result := make(map[string]string)
	for _, coding := range SplitIntoCodings(annotation) {
		if _, seen := result[coding.Code]; !seen {
			result[coding.Code] = coding.Suffix
		}
	}
	return result
}
