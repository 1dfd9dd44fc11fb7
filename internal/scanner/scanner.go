// Package scanner extracts scaffold document references from an index document.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/starford/docscaffold/internal/apperr"
)

// DefaultDir is the scaffold directory segment the index links point into.
const DefaultDir = "files"

// Default matches links of the form ](./files/NNNN.md).
var Default = New(DefaultDir)

// Scanner applies the link pattern to an index document, one match per line.
type Scanner struct {
	re *regexp.Regexp
}

// New returns a Scanner for links into dir. Only four ASCII digits followed by
// ".md" are accepted as a document name.
func New(dir string) *Scanner {
	seg := path.Clean(filepath.ToSlash(dir))
	seg = strings.TrimPrefix(seg, "./")
	return &Scanner{
		re: regexp.MustCompile(`\]\(\./` + regexp.QuoteMeta(seg) + `/([0-9]{4}\.md)\)`),
	}
}

// Pattern returns the regular expression source used for matching.
func (s *Scanner) Pattern() string {
	return s.re.String()
}

// MatchLine returns the document name referenced by the first matching link
// in line. Later links on the same line are ignored.
func (s *Scanner) MatchLine(line string) (string, bool) {
	m := s.re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Scan reads r line by line and returns the referenced names in file order.
// Duplicates are kept. "\n", "\r\n" and a lone "\r" all end a line. Input
// that is not valid UTF-8 fails with apperr.ErrNotText.
func (s *Scanner) Scan(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var out []string
	for n := 1; ; n++ {
		chunk, err := br.ReadString('\n')
		if !utf8.ValidString(chunk) {
			return nil, fmt.Errorf("line %d: %w", n, apperr.ErrNotText)
		}
		if chunk != "" {
			for _, line := range strings.Split(chunk, "\r") {
				if name, ok := s.MatchLine(line); ok {
					out = append(out, name)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ScanFile scans the index document at indexPath. Open, read and decode
// failures are reported as *apperr.FileAccessError.
func (s *Scanner) ScanFile(indexPath string) ([]string, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, &apperr.FileAccessError{Path: indexPath, Err: err}
	}
	defer f.Close()

	names, err := s.Scan(f)
	if err != nil {
		return nil, &apperr.FileAccessError{Path: indexPath, Err: err}
	}
	return names, nil
}
