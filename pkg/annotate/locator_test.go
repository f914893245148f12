package annotate

import (
	"testing"

	"github.com/qodalab/qoda/pkg/codebook"
)

func testAnnotations(t *testing.T) *Annotations {
	t.Helper()
	cb, err := codebook.Parse(
		"code `a`\ncode `b:flag:i\\d+u\\d*:i\\d*u\\d+`\ncode `-doubt`\ncode `-ignorediff`\n",
		"-ignorediff", nil)
	if err != nil {
		t.Fatalf("codebook.Parse() error = %v", err)
	}
	return New(cb)
}

func TestFindAnnotationish(t *testing.T) {
	annots := testAnnotations(t)
	tests := []struct {
		name string
		text string
		want Annotationish
	}{
		{
			name: "valid annotation alone on a line",
			text: "A sentence.\n{{a, b:i1}}\nmore text\n",
			want: Annotationish{Valid: "{{a, b:i1}}"},
		},
		{
			name: "second closing brace missing",
			text: "A sentence.\n{{abc}\nmore text\n",
			want: Annotationish{ClosingBroken: "{{abc}"},
		},
		{
			name: "second opening brace missing",
			text: "A sentence.\n{abc}}\nmore text\n",
			want: Annotationish{OpeningBroken: "{abc}}"},
		},
		{
			name: "annotation not alone on its line",
			text: "A sentence.\ntrailing {{abc}}\nmore text\n",
			want: Annotationish{Misplaced: "trailing {{abc}}"},
		},
		{
			name: "annotation on the first line is found",
			text: "{{a}}\nmore text\n",
			want: Annotationish{Valid: "{{a}}"},
		},
		{
			name: "annotation on the last line without newline is found",
			text: "A sentence.\n{{a}}",
			want: Annotationish{Valid: "{{a}}"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annots.FindAnnotationish(tt.text)
			if len(got) != 1 {
				t.Fatalf("FindAnnotationish() returned %d matches, want 1: %+v", len(got), got)
			}
			if got[0] != tt.want {
				t.Errorf("FindAnnotationish() = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		match    Annotationish
		wantMsg  bool
		wantAnno string
	}{
		{"closing broken", Annotationish{ClosingBroken: "{{abc}"}, true, ""},
		{"opening broken", Annotationish{OpeningBroken: "{abc}}"}, true, ""},
		{"misplaced", Annotationish{Misplaced: "x {{abc}}"}, true, ""},
		{"valid", Annotationish{Valid: "{{abc}}"}, false, "{{abc}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, annotation := Classify(tt.match)
			if (msg != "") != tt.wantMsg {
				t.Errorf("Classify() msg = %q, wantMsg %v", msg, tt.wantMsg)
			}
			if annotation != tt.wantAnno {
				t.Errorf("Classify() annotation = %q, want %q", annotation, tt.wantAnno)
			}
			if (msg != "") == (annotation != "") {
				t.Error("Classify() must return a message or an annotation, never both or neither")
			}
		})
	}
}

func TestFindSentenceAnnotationPairs(t *testing.T) {
	annots := testAnnotations(t)
	text := "First sentence.\n{{a}}\nSecond sentence.\n{{b:i1}}\nTrailing text without annotation.\n"
	pairs := annots.FindSentenceAnnotationPairs(text)
	if len(pairs) != 2 {
		t.Fatalf("FindSentenceAnnotationPairs() returned %d pairs, want 2", len(pairs))
	}
	if pairs[0].Index != 1 || pairs[0].Sentence != "First sentence." || pairs[0].Annotation != "{{a}}" {
		t.Errorf("pair 1 = %+v", pairs[0])
	}
	if pairs[1].Index != 2 || pairs[1].Sentence != "Second sentence." || pairs[1].Annotation != "{{b:i1}}" {
		t.Errorf("pair 2 = %+v", pairs[1])
	}
}

func TestFindSentenceAnnotationPairsConsecutiveAnnotations(t *testing.T) {
	annots := testAnnotations(t)
	text := "A sentence.\n{{a}}\n{{b}}\n"
	pairs := annots.FindSentenceAnnotationPairs(text)
	if len(pairs) != 2 {
		t.Fatalf("FindSentenceAnnotationPairs() returned %d pairs, want 2", len(pairs))
	}
	if pairs[1].Sentence != "" || pairs[1].Annotation != "{{b}}" {
		t.Errorf("pair 2 = %+v, want empty sentence and {{b}}", pairs[1])
	}
}

func TestIsEmptyAnnotation(t *testing.T) {
	tests := []struct {
		annotation string
		want       bool
	}{
		{"{{}}", true},
		{"{{  }}", true},
		{"{{\t}}", true},
		{"{{a}}", false},
		{"{{ a }}", false},
	}
	for _, tt := range tests {
		if got := IsEmptyAnnotation(tt.annotation); got != tt.want {
			t.Errorf("IsEmptyAnnotation(%q) = %v, want %v", tt.annotation, got, tt.want)
		}
	}
}
