package rec

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every program under testdata/fixtures through the
// engine and snapshots the outcome with go-snaps. Each fixture defines a
// zero-parameter entry point named main; failures are snapshotted as the
// formatted (line, kind) diagnostic.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "fixtures", "*.rec"))
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}

			result, evalErr := Evaluate(string(source), "main")
			if evalErr != nil {
				snaps.MatchSnapshot(t, fmt.Sprintf("error: %v", evalErr))
				return
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("result: %d", result))
		})
	}
}
