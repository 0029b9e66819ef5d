package harness

import (
	"context"
	"fmt"

	"github.com/roach88/sift/internal/pipeline"
)

// Run executes a scenario and returns the pipeline result.
//
// The run token is fixed to "scenario-{name}" so that logs and traces from
// repeated runs of the same scenario are identical.
func Run(scenario *Scenario) (*pipeline.Result, error) {
	tbl, err := scenario.InputTable()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: build input: %w", scenario.Name, err)
	}

	cfg, err := scenario.PipelineConfig()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: build config: %w", scenario.Name, err)
	}

	runner := pipeline.NewRunner(pipeline.NewFixedGenerator("scenario-" + scenario.Name))
	res, err := runner.RunConfig(context.Background(), tbl, cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return res, nil
}
