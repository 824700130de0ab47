package checkfixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/ayutac/mizar-go/internal/core/checker"
)

// Suite runs every .txtar fixture rooted at Root as one subtest, mirroring
// cuetxtar.TxTarTest's directory-of-scenarios convention. Each archive
// holds one "fixture.yaml" file (decoded by Parse); the outcome of running
// checker.Justify on it is checked against the fixture's "want" block.
//
// Grounded on internal/cuetxtar/txtar.go's TxTarTest/Test pair: this type
// plays TxTarTest's role (locate and iterate the fixtures), and the
// unexported runOne below plays Test's role (execute one, check the result).
type Suite struct {
	Root string
	Skip map[string]string
}

// Run walks Root for .txtar files and runs each one as a subtest of t.
func (s Suite) Run(t *testing.T) {
	var names []string
	err := filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".txtar") {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("checkfixture: walking %s: %v", s.Root, err)
	}
	sort.Strings(names)

	for _, path := range names {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			if msg, ok := s.Skip[name]; ok {
				t.Skip(msg)
			}
			runOne(t, path)
		})
	}
}

func runOne(t *testing.T, path string) {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	a := txtar.Parse(raw)

	var fixtureData []byte
	for _, f := range a.Files {
		if f.Name == "fixture.yaml" {
			fixtureData = f.Data
			break
		}
	}
	if fixtureData == nil {
		t.Fatalf("%s: no fixture.yaml entry", path)
	}

	fx, err := Parse(fixtureData)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}

	g, lc, premises, err := fx.Build()
	if err != nil {
		t.Fatalf("%s: building fixture: %v", path, err)
	}

	gotErr := checker.Justify(g, lc, premises, 0)
	gotRefuted := gotErr == nil

	if gotRefuted != fx.Want.Refuted {
		t.Errorf("%s: Justify refuted = %v, want %v\nerror: %# v", path, gotRefuted, fx.Want.Refuted, pretty.Formatter(gotErr))
		return
	}
	if !gotRefuted && fx.Want.ReasonContains != "" && !strings.Contains(gotErr.Error(), fx.Want.ReasonContains) {
		t.Errorf("%s: failure reason %q does not contain %q", path, gotErr.Error(), fx.Want.ReasonContains)
	}
}

// ParseFile is a convenience wrapper used by cmd/mizarcheck to load a
// single fixture outside of the testing.T-driven Suite.Run path.
func ParseFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a := txtar.Parse(raw)
	for _, f := range a.Files {
		if f.Name == "fixture.yaml" {
			return Parse(f.Data)
		}
	}
	return nil, fmt.Errorf("checkfixture: %s: no fixture.yaml entry", path)
}
