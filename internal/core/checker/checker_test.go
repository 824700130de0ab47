package checker_test

import (
	"testing"

	"github.com/ayutac/mizar-go/internal/checkfixture"
)

// TestFixtures runs every golden scenario under testdata/ through
// checker.Justify via the checkfixture harness, mirroring how
// cuetxtar.TxTarTest drives cue's own golden-file tests.
func TestFixtures(t *testing.T) {
	checkfixture.Suite{Root: "testdata"}.Run(t)
}
