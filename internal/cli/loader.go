package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/sift/internal/compiler"
	"github.com/roach88/sift/internal/pipeline"
)

// LoadDefinition loads and compiles a CUE pipeline definition, stopping at
// the first error.
//
// The path may be a single .cue file or a directory; a directory is loaded
// as one CUE instance, so definitions can be split across files.
func LoadDefinition(path string) (*pipeline.Config, error) {
	value, err := LoadDefinitionValue(path)
	if err != nil {
		return nil, err
	}

	cfg, err := compiler.CompileDefinition(value)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "invalid definition", err)
	}
	return cfg, nil
}

// LoadDefinitionValue loads a CUE definition as a raw value, without
// compiling it to a config. The validate command uses this to collect every
// definition error instead of stopping at the first.
func LoadDefinitionValue(path string) (cue.Value, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cue.Value{}, NewExitError(ExitCommandError, fmt.Sprintf("definition not found: %s", path))
	}
	if err != nil {
		return cue.Value{}, WrapExitError(ExitCommandError, "error accessing definition", err)
	}

	ctx := cuecontext.New()
	if info.IsDir() {
		return buildDirectory(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, WrapExitError(ExitCommandError, "error reading definition", err)
	}
	return ctx.CompileBytes(data, cue.Filename(path)), nil
}

// buildDirectory loads all CUE files in a directory as one instance.
// Files are named explicitly so that definitions without a package clause
// still load.
func buildDirectory(ctx *cue.Context, dir string) (cue.Value, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return cue.Value{}, WrapExitError(ExitCommandError, "error scanning directory", err)
	}
	if len(matches) == 0 {
		return cue.Value{}, NewExitError(ExitCommandError, fmt.Sprintf("no CUE files found in %s", dir))
	}

	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Base(m)
	}

	instances := load.Instances(files, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, NewExitError(ExitFailure, fmt.Sprintf("no CUE instances in %s", dir))
	}

	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, WrapExitError(ExitFailure, "loading CUE files", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return cue.Value{}, WrapExitError(ExitFailure, "building CUE value", err)
	}
	return value, nil
}
