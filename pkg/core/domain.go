// Package core holds the domain entities and error kinds shared by the
// qoda services.
package core

// CodeDef is one entry of the codebook: a code name plus the definition
// of which colon-separated suffix tokens are allowed after it.
// An empty SuffixDef means the code never takes a suffix.
type CodeDef struct {
	Code      string
	SuffixDef string
	// SuffixPattern is the alternation derived from SuffixDef by turning
	// the separators into '|'. Each suffix token must fully match it.
	SuffixPattern string
}

// Coding is a single (code, suffix) pair from an annotation.
// Suffix keeps its leading separator, e.g. ":flag:i1", or is empty.
type Coding struct {
	Code   string
	Suffix string
}

// AnnotatedSentence is the unit of comparison between two coders:
// the sentence text immediately preceding an annotation, plus the raw
// annotation itself. Index is 1-based per file.
type AnnotatedSentence struct {
	Index      int
	Sentence   string
	Annotation string
}

// IUCounts holds the informativeness and understandability counts of one
// code on both sides of a file pair.
type IUCounts struct {
	I1, U1 int
	I2, U2 int
}
