package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sift/internal/table"
)

// RunWithGolden executes a scenario and compares the canonical encoding of
// the cleaned table against a golden file. The golden file is stored in
// testdata/golden/{scenario.Name}.golden and ends with a newline.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; mismatches against the
// golden file fail the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	res, err := Run(scenario)
	if err != nil {
		return err
	}

	canonical, err := table.CanonicalTable(res.Table)
	if err != nil {
		return err
	}
	canonical = append(canonical, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, canonical)

	return nil
}
