//go:build basic

// Package integration contains end-to-end tests for the vainupylinter binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGateExitCodes runs the binary against a fake pylint and checks the verdicts.
func TestGateExitCodes(t *testing.T) {
	pylint := fakePylint(t)
	files := pythonFiles(t, "app/good.py", "app/bad.py", "tests/test_bad.py")
	good, bad, testBad := files[0], files[1], files[2]

	tests := []struct {
		name     string
		args     []string
		exitCode int
		contains []string
	}{
		{
			name:     "all files pass",
			args:     []string{good},
			exitCode: 0,
			contains: []string{"PYLINT WAS SUCCESSFUL!"},
		},
		{
			name:     "low score fails",
			args:     []string{good, bad},
			exitCode: 1,
			contains: []string{"PYLINTING FAILED", bad},
		},
		{
			name:     "lower threshold still fails on errors",
			args:     []string{"-t", "5", bad},
			exitCode: 1,
			contains: []string{"PYLINTING FAILED"},
		},
		{
			name:     "allowed errors under lower threshold",
			args:     []string{"-t", "5", "-e", bad},
			exitCode: 0,
		},
		{
			name:     "test files are exempt",
			args:     []string{"-i", testBad},
			exitCode: 0,
		},
		{
			name:     "non python paths are skipped",
			args:     []string{"README.md", "go.mod"},
			exitCode: 0,
		},
		{
			name:     "no files",
			args:     []string{},
			exitCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--pylint", pylint, "--color", "no"}, tt.args...)
			output, code := runCommand(t, args...)
			assert.Equal(t, tt.exitCode, code, output)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
		})
	}
}

// TestGateCustomPolicy applies a policy YAML through the legacy -cp flag.
func TestGateCustomPolicy(t *testing.T) {
	pylint := fakePylint(t)
	files := pythonFiles(t, "legacy/bad.py")

	policy := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(policy, []byte(`
thresholds:
  paths:
    - pattern: "legacy/"
      threshold: 5.0
`), 0o644))

	output, code := runCommand(t, "--pylint", pylint, "-e", "-cp", policy, files[0])
	assert.Equal(t, 0, code, output)

	output, code = runCommand(t, "--pylint", pylint, "-e", "-cp", filepath.Join(t.TempDir(), "missing.yaml"), files[0])
	assert.Equal(t, 1, code, output)
	assert.Contains(t, output, "Failed to load custom extension")
}

// TestJSONReport writes the per-file report to a file.
func TestJSONReport(t *testing.T) {
	pylint := fakePylint(t)
	files := pythonFiles(t, "good.py")
	report := filepath.Join(t.TempDir(), "report.json")

	output, code := runCommand(t, "--pylint", pylint, "--output", "json", "--output-file", report, files[0])
	require.Equal(t, 0, code, output)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outcome": "passed"`)
}

// TestSQLiteHistory records two runs and inspects them through the history commands.
func TestSQLiteHistory(t *testing.T) {
	pylint := fakePylint(t)
	files := pythonFiles(t, "good.py", "bad.py")
	dbPath := filepath.Join(t.TempDir(), "history.db")
	history := []string{"--history-backend", "sqlite", "--history-db-connect", dbPath}

	_, code := runCommand(t, append(append([]string{"--pylint", pylint}, history...), files[0])...)
	require.Equal(t, 0, code)
	_, code = runCommand(t, append(append([]string{"--pylint", pylint}, history...), files...)...)
	require.Equal(t, 1, code)

	output, code := runCommand(t, append([]string{"history", "status"}, history...)...)
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Total Runs: 2")
	assert.Contains(t, output, "Failed Runs: 1")
	assert.Contains(t, output, "Total Files Checked: 3")

	prefix := filepath.Join(t.TempDir(), "export")
	output, code = runCommand(t, append([]string{"history", "export", "--output-file", prefix}, history...)...)
	require.Equal(t, 0, code, output)
	assert.FileExists(t, prefix+".runs.parquet")
	assert.FileExists(t, prefix+".file_verdicts.parquet")

	output, code = runCommand(t, append([]string{"history", "clear"}, history...)...)
	require.Equal(t, 0, code, output)
	assert.NoFileExists(t, dbPath)
}

// TestVersion prints build details.
func TestVersion(t *testing.T) {
	output, code := runCommand(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, output, "vainupylinter CLI")
}
