package annotate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/qodalab/qoda/pkg/core"
)

func TestSplitIntoCodings(t *testing.T) {
	tests := []struct {
		name       string
		annotation string
		want       []core.Coding
	}{
		{
			name:       "codes with and without suffix",
			annotation: "{{a, b:i1}}",
			want:       []core.Coding{{Code: "a"}, {Code: "b", Suffix: ":i1"}},
		},
		{
			name:       "multi-token suffix stays together",
			annotation: "{{b:flag:i2u1}}",
			want:       []core.Coding{{Code: "b", Suffix: ":flag:i2u1"}},
		},
		{
			name:       "garbage separators are ignored",
			annotation: "{{a,, ;  b , -doubt}}",
			want:       []core.Coding{{Code: "a"}, {Code: "b"}, {Code: "-doubt"}},
		},
		{
			name:       "empty annotation",
			annotation: "{{}}",
			want:       nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIntoCodings(tt.annotation)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitIntoCodings(%q) = %+v, want %+v", tt.annotation, got, tt.want)
			}
		})
	}
}

func TestCodingsOf(t *testing.T) {
	annots := testAnnotations(t)
	tests := []struct {
		name            string
		annotation      string
		stripSuffixes   bool
		stripSubjective bool
		want            []string
	}{
		{
			name:       "full codings",
			annotation: "{{a, b:i1, -doubt}}",
			want:       []string{"-doubt", "a", "b:i1"},
		},
		{
			name:          "suffixes stripped",
			annotation:    "{{a, b:i1}}",
			stripSuffixes: true,
			want:          []string{"a", "b"},
		},
		{
			name:            "subjective codes stripped",
			annotation:      "{{a, -doubt, -ignorediff}}",
			stripSubjective: true,
			want:            []string{"-ignorediff", "a"},
		},
		{
			name:          "duplicates collapse",
			annotation:    "{{a, a, b:i1, b:i2}}",
			stripSuffixes: true,
			want:          []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annots.CodingsOf(tt.annotation, tt.stripSuffixes, tt.stripSubjective)
			if !reflect.DeepEqual(SortedCodings(got), tt.want) {
				t.Errorf("CodingsOf(%q) = %v, want %v", tt.annotation, SortedCodings(got), tt.want)
			}
		})
	}
}

// Re-parsing the stable-sorted reconstruction of a codings set must
// yield the same set.
func TestCodingsOfRoundTrip(t *testing.T) {
	annots := testAnnotations(t)
	original := annots.CodingsOf("{{b:i2u1, a, -doubt, a}}", false, false)
	reconstructed := "{{" + strings.Join(SortedCodings(original), ", ") + "}}"
	reparsed := annots.CodingsOf(reconstructed, false, false)
	if !reflect.DeepEqual(original, reparsed) {
		t.Errorf("round trip changed the set: %v != %v", original, reparsed)
	}
}

func TestBareCodeName(t *testing.T) {
	tests := []struct {
		coding string
		want   string
	}{
		{"a", "a"},
		{"b:i1", "b"},
		{"-doubt", "doubt"},
		{"g-strength:i2u1", "g-strength"},
	}
	for _, tt := range tests {
		if got := BareCodeName(tt.coding); got != tt.want {
			t.Errorf("BareCodeName(%q) = %q, want %q", tt.coding, got, tt.want)
		}
	}
}

func TestSuffixCounts(t *testing.T) {
	tests := []struct {
		suffix string
		wantI  int
		wantU  int
	}{
		{"", 0, 0},
		{":i2", 2, 0},
		{":u3", 0, 3},
		{":i2u1", 2, 1},
		{":flag:i10u4", 10, 4},
	}
	for _, tt := range tests {
		i, u := SuffixCounts(tt.suffix)
		if i != tt.wantI || u != tt.wantU {
			t.Errorf("SuffixCounts(%q) = (%d, %d), want (%d, %d)", tt.suffix, i, u, tt.wantI, tt.wantU)
		}
	}
}

func TestCodesWithIUCounts(t *testing.T) {
	annots := testAnnotations(t)
	codes, counts := annots.CodesWithIUCounts("{{a, b:i2u1}}", "{{a, b:i5}}")
	if len(codes) != 1 || codes[0] != "b" {
		t.Fatalf("codes = %v, want [b]: 'a' is not suffix-bearing", codes)
	}
	want := core.IUCounts{I1: 2, U1: 1, I2: 5, U2: 0}
	if counts["b"] != want {
		t.Errorf("counts[b] = %+v, want %+v", counts["b"], want)
	}
}

func TestCodesWithIUCountsOnlyCommonCodes(t *testing.T) {
	annots := testAnnotations(t)
	codes, _ := annots.CodesWithIUCounts("{{b:i1}}", "{{a}}")
	if len(codes) != 0 {
		t.Errorf("codes = %v, want none: b appears on one side only", codes)
	}
}
