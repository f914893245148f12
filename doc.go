// Package qoda is the composition root for the qoda toolkit.
//
// qoda supports collaborative qualitative coding of scientific-paper
// extracts: several human coders annotate sentences in plain-text files
// with a small bracketed markup, e.g.
//
//	The results generalize to industrial settings.
//	{{claim, g-strength:i2u1}}
//
// and the tooling validates that markup against the project's codebook
// and flags the disagreements between two coders annotating the same
// text.
//
// The legal codes and their suffix grammars live in a free-text codebook
// document containing inline definitions such as
//
//	code `g-strength:flag:i\d+u\d+`
//
// The who-what registry (sample-who-what.txt) says which coder annotated
// which file and which file pairs get cross-compared.
//
// Usage:
//
//	project, err := qoda.Open("prestudy", qoda.WithLogger(logger))
//	if err != nil { ... }
//	problems := project.Check()
//	os.Exit(problems)
//
// All collaborators (codebook, registry, configuration) are wired here
// through explicit constructor injection; the packages under pkg/ carry
// no global state.
package qoda
