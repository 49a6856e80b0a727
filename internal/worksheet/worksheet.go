// Package worksheet loads and watches expression worksheets.
//
// A worksheet is a plain text file with one expression per line. Blank
// lines and lines starting with # are ignored.
package worksheet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pengelbrecht/mathx/internal/expr"
)

// Result is the outcome of evaluating one worksheet line.
type Result struct {
	Line  int    `json:"line"`
	Expr  string `json:"expr"`
	Value int    `json:"value"`
	Err   string `json:"err,omitempty"`
}

// Snapshot is the evaluated state of a worksheet at a point in time.
type Snapshot struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Results     []Result  `json:"results"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Errors returns the number of results that failed to parse.
func (s *Snapshot) Errors() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != "" {
			n++
		}
	}
	return n
}

// Load reads and evaluates the worksheet at path. Lines that fail to parse
// are kept in the snapshot with a per-line error instead of aborting, so a
// half-edited worksheet still evaluates the lines that are valid.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open worksheet: %w", err)
	}
	defer f.Close()

	snap := &Snapshot{
		Path:        path,
		Name:        Name(path),
		EvaluatedAt: time.Now().UTC(),
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result := Result{Line: lineNo, Expr: line}
		if e, err := expr.Parse(line); err != nil {
			result.Err = err.Error()
		} else {
			result.Expr = e.String()
			result.Value = e.Eval()
		}
		snap.Results = append(snap.Results, result)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}

	return snap, nil
}

// Name returns the worksheet name for a path: the base name without its
// extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
