// Package report summarizes coding progress: how many units are coded,
// by which pairs of coders, over how many blocks.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/qodalab/qoda/pkg/whowhat"
)

type tally struct {
	pairCount int
	blocks    map[string]bool
}

func newTally() *tally {
	return &tally{blocks: make(map[string]bool)}
}

// Progress writes the coding-progress report for the registry to out.
func Progress(out io.Writer, reg *whowhat.Registry) {
	totalPairs := 0
	allBlocks := make(map[string]bool)
	pairTallies := make(map[[2]string]*tally)

	for _, pair := range reg.Pairs() {
		coders := [2]string{pair.Coder1, pair.Coder2}
		if coders[0] > coders[1] {
			coders[0], coders[1] = coders[1], coders[0]
		}
		block := reg.Block(pair.File1)
		totalPairs++
		allBlocks[block] = true
		t, ok := pairTallies[coders]
		if !ok {
			t = newTally()
			pairTallies[coders] = t
		}
		t.pairCount++
		t.blocks[block] = true
	}

	fmt.Fprintf(out, "\nCoded Units: %d (%d blocks)\n", totalPairs, len(allBlocks))

	namePad := 0
	for _, coder := range reg.Coders() {
		if len(coder) > namePad {
			namePad = len(coder)
		}
	}

	fmt.Fprintf(out, "\nCoding Pairs:\n")
	sortedPairs := sortedKeys(pairTallies)
	for _, coders := range sortedPairs {
		t := pairTallies[coders]
		fmt.Fprintf(out, "%-*s & %-*s %d (%d blocks)\n",
			namePad, coders[0], namePad, coders[1], t.pairCount, len(t.blocks))
	}

	fmt.Fprintf(out, "\nCoding Individuals:\n")
	coderTallies := make(map[string]*tally)
	for _, coder := range reg.Coders() {
		for _, coders := range sortedPairs {
			if coder != coders[0] && coder != coders[1] {
				continue
			}
			t, ok := coderTallies[coder]
			if !ok {
				t = newTally()
				coderTallies[coder] = t
			}
			t.pairCount += pairTallies[coders].pairCount
			for block := range pairTallies[coders].blocks {
				t.blocks[block] = true
			}
		}
	}
	var coders []string
	for coder := range coderTallies {
		coders = append(coders, coder)
	}
	sort.Slice(coders, func(i, j int) bool {
		if coderTallies[coders[i]].pairCount != coderTallies[coders[j]].pairCount {
			return coderTallies[coders[i]].pairCount > coderTallies[coders[j]].pairCount
		}
		return coders[i] < coders[j]
	})
	for _, coder := range coders {
		t := coderTallies[coder]
		fmt.Fprintf(out, "%-*s %d (%d blocks)\n", namePad, coder, t.pairCount, len(t.blocks))
	}
	fmt.Fprintln(out, "")
}

// sortedKeys orders coder pairs by descending pair count, then name.
func sortedKeys(tallies map[[2]string]*tally) [][2]string {
	var keys [][2]string
	for k := range tallies {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if tallies[keys[i]].pairCount != tallies[keys[j]].pairCount {
			return tallies[keys[i]].pairCount > tallies[keys[j]].pairCount
		}
		return strings.Join(keys[i][:], " ") < strings.Join(keys[j][:], " ")
	})
	return keys
}
