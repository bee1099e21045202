// Package filetest provides golden-file test helpers: enumerate source
// fixtures in a testdata directory, then diff each one's actual output
// against a checked-in ".want" file, with a flag to regenerate the fixtures
// when the expected output legitimately changes.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var testUpdateGolden = flag.Bool("test.update-golden", false, "update golden (.want) files with actual output")

// SourceFiles returns the base names of the regular files in dir whose
// extension matches ext (a leading dot is added if missing), sorted by file
// name.
func SourceFiles(t *testing.T, dir, ext string) []string {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, dent := range dents {
		if dent.IsDir() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		names = append(names, dent.Name())
	}
	return names
}

// DiffGolden validates that got matches the contents of wantFile, failing
// the test with a unified diff if not. With -test.update-golden, it writes
// got to wantFile instead of comparing.
func DiffGolden(t *testing.T, got, wantFile string) {
	t.Helper()

	if *testUpdateGolden {
		if err := os.WriteFile(wantFile, []byte(got), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(wantFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("golden mismatch for %s:\n%s", wantFile, patch)
	}
}
