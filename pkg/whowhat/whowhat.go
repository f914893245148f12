// Package whowhat reads the sample-who-what registry of a coding
// workspace: which coder annotated which file, which block a file
// belongs to, and which pairs of files must be cross-compared.
package whowhat

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/qodalab/qoda/pkg/core"
)

// FileName is the registry file inside the workdir.
const FileName = "sample-who-what.txt"

var (
	blockHeaderPattern = regexp.MustCompile(`^#---+ [Bb]lock (\d+)`)
	filenamePattern    = regexp.MustCompile(`/(.*?)([A-Z])/(\w+)\.txt$`)
)

// Pair is one comparison job: two files annotated by two coders.
type Pair struct {
	File1  string
	Coder1 string
	File2  string
	Coder2 string
}

// Registry answers who coded what. It hides the registry filename, its
// format, the meaning of its entries (blocks, reservations, implied
// filenames, coder letters) and which file pairs get compared.
type Registry struct {
	Workdir      string
	subdirPrefix string
	coders       map[string]bool
	coderOf      map[string]string
	blockOf      map[string]string
	pairs        []Pair
}

// Load reads workdir/sample-who-what.txt. The extracts subdirectories
// are expected as workdir/<prefix>A, <prefix>B, ... with one column per
// subdirectory; the prefix (possibly empty) is discovered by globbing.
func Load(workdir string) (*Registry, error) {
	prefix, err := subdirPrefix(workdir)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		Workdir:      workdir,
		subdirPrefix: prefix,
		coders:       make(map[string]bool),
		coderOf:      make(map[string]string),
		blockOf:      make(map[string]string),
	}

	path := filepath.Join(workdir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.ConfigurationError{Path: path, Err: err}
	}

	currentBlock := ""
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") {
			if m := blockHeaderPattern.FindStringSubmatch(line); m != nil {
				currentBlock = m[1]
			}
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		citekey, columns := parts[0], parts[1:]
		for index, coder := range columns {
			if IsReservation(coder) {
				continue // reservations are non-entries
			}
			r.coders[coder] = true
			filename := r.impliedFilename(citekey, index)
			r.coderOf[filename] = coder
			r.blockOf[filename] = currentBlock
		}
		r.pairs = append(r.pairs, r.buildPairsWithA(citekey, columns)...)
	}
	return r, nil
}

// IsReservation reports whether a column entry marks a reserved
// (non-real) coder slot.
func IsReservation(coder string) bool {
	return strings.HasPrefix(coder, "-")
}

// Coders returns all coder names, sorted.
func (r *Registry) Coders() []string {
	result := make([]string, 0, len(r.coders))
	for coder := range r.coders {
		result = append(result, coder)
	}
	sort.Strings(result)
	return result
}

// FilesOf returns the files annotated by coder, sorted.
func (r *Registry) FilesOf(coder string) []string {
	var result []string
	for file, c := range r.coderOf {
		if c == coder {
			result = append(result, file)
		}
	}
	sort.Strings(result)
	return result
}

// Block returns the block a file belongs to.
func (r *Registry) Block(filename string) string {
	return r.blockOf[filename]
}

// Coder returns the coder a file belongs to, or "".
func (r *Registry) Coder(filename string) string {
	return r.coderOf[filename]
}

// Dirs returns the extracts subdirectories holding registered files,
// sorted.
func (r *Registry) Dirs() []string {
	seen := make(map[string]bool)
	for file := range r.coderOf {
		seen[filepath.Dir(file)] = true
	}
	var result []string
	for dir := range seen {
		result = append(result, dir)
	}
	sort.Strings(result)
	return result
}

// Pairs returns the comparison jobs, reservations excluded.
func (r *Registry) Pairs() []Pair {
	var result []Pair
	for _, p := range r.pairs {
		if !IsReservation(p.Coder1) && !IsReservation(p.Coder2) {
			result = append(result, p)
		}
	}
	return result
}

// CiteKey extracts the content key from an implied filename.
func (r *Registry) CiteKey(filename string) string {
	return r.filenamePart(filename, 3)
}

// CoderLetter extracts the column letter from an implied filename.
func (r *Registry) CoderLetter(filename string) string {
	return r.filenamePart(filename, 2)
}

// impliedFilename knows the <prefix>A, <prefix>B subdirectory naming
// convention. The first column has index 0; 26 columns maximum.
func (r *Registry) impliedFilename(citekey string, column int) string {
	letter := string(rune('A' + column))
	return fmt.Sprintf("%s/%s%s/%s.txt", r.Workdir, r.subdirPrefix, letter, citekey)
}

func (r *Registry) filenamePart(filename string, group int) string {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return m[group]
}

// buildPairsWithA yields the pairs A/B, A/C, A/D etc., reservations
// included (Pairs filters them out).
func (r *Registry) buildPairsWithA(citekey string, columns []string) []Pair {
	if len(columns) == 0 {
		return nil
	}
	coderA := columns[0]
	fileA := r.impliedFilename(citekey, 0)
	var result []Pair
	for index, coder := range columns[1:] {
		result = append(result, Pair{
			File1:  fileA,
			Coder1: coderA,
			File2:  r.impliedFilename(citekey, index+1),
			Coder2: coder,
		})
	}
	return result
}

// subdirPrefix determines which, if any, prefix the extracts-holding
// subdirectories use: workdir/abstracts.A yields "abstracts.",
// workdir/A yields "".
func subdirPrefix(workdir string) (string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(workdir, "*A"))
	if err != nil {
		return "", err
	}
	var dirs []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) != 1 {
		return "", fmt.Errorf("expected exactly one '*A' extracts directory in %s, found %d", workdir, len(dirs))
	}
	base := filepath.Base(dirs[0])
	return strings.TrimSuffix(base, "A"), nil
}
