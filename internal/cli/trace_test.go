package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordOneRun runs the standard fixture with --db and returns the db path
// and the recorded run token.
func recordOneRun(t *testing.T) (dbPath, token string) {
	t.Helper()
	defPath := writeDefinition(t, validDefinition)
	inputPath := writeInput(t, customerCSV)
	dbPath = filepath.Join(t.TempDir(), "runs.db")

	_, _, err := executeCommand(t, "run", defPath, inputPath, "--db", dbPath, "-o", filepath.Join(t.TempDir(), "out.csv"))
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	runs, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	return dbPath, run["token"].(string)
}

func TestTrace_ListRuns(t *testing.T) {
	dbPath, token := recordOneRun(t)

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "TOKEN")
	assert.Contains(t, stdout, token)
	assert.Contains(t, stdout, "standard")
}

func TestTrace_ShowRun(t *testing.T) {
	dbPath, token := recordOneRun(t)

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath, token)
	require.NoError(t, err)
	assert.Contains(t, stdout, "6 rows in, 4 rows out")
	for _, stage := range []string{"format", "dedup", "normalize_gender", "extract_complaint_month", "replace", "cast"} {
		assert.Contains(t, stdout, stage, "stage %s missing from trace output", stage)
	}
}

func TestTrace_ShowRun_JSON(t *testing.T) {
	dbPath, token := recordOneRun(t)

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath, token, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	trace := data["trace"].([]any)
	// format, dedup, gender, complaints, 1 replace, 2 casts
	assert.Len(t, trace, 7)
}

func TestTrace_RunNotFound(t *testing.T) {
	dbPath, _ := recordOneRun(t)

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath, "no-such-token")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "run not found")
}

func TestTrace_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	stdout, _, err := executeCommand(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(stdout, "no runs recorded"))
}

func TestTrace_RequiresDatabaseFlag(t *testing.T) {
	_, _, err := executeCommand(t, "trace")
	assert.Error(t, err)
}
