package contract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vainuio/vainupylinter/schema"
)

const cleanReport = `{
  "messages": [
    {"type": "convention", "symbol": "missing-module-docstring", "messageId": "C0114",
     "message": "Missing module docstring", "path": "app/views.py", "line": 1, "column": 0}
  ],
  "statistics": {
    "messageTypeCount": {"fatal": 0, "error": 0, "warning": 0, "refactor": 0, "convention": 1, "info": 0},
    "modulesLinted": 1,
    "score": 9.5
  }
}`

const syntaxErrorReport = `{
  "messages": [
    {"type": "error", "symbol": "syntax-error", "messageId": "E0001",
     "message": "Parsing failed", "path": "broken.py", "line": 3, "column": 1}
  ],
  "statistics": {
    "messageTypeCount": {"fatal": 0, "error": 1, "warning": 0, "refactor": 0, "convention": 0, "info": 0},
    "modulesLinted": 1,
    "score": 0
  }
}`

// skipIfShellNotAvailable skips the test if sh is not found in PATH
func skipIfShellNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh binary not found in PATH: %v", err)
	}
}

// fakePylint returns a command that prints report and exits with code.
// The pylint arguments appended by Lint land in $0.. and are ignored.
func fakePylint(t *testing.T, report string, code int) []string {
	t.Helper()
	reportFile := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(reportFile, []byte(report), 0o644))
	return []string{"sh", "-c", "cat '" + reportFile + "'; exit " + strconv.Itoa(code)}
}

func TestBuildArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"a.py", "--score", "no", "--output-format", "json2"},
		BuildArgs("a.py", ""))
	assert.Equal(t,
		[]string{"a.py", "--rcfile", ".pylintrc", "--score", "no", "--output-format", "json2"},
		BuildArgs("a.py", ".pylintrc"))
}

func TestNewLocalPylint_DefaultCommand(t *testing.T) {
	client := NewLocalPylint(nil)
	assert.Equal(t, []string{"python", "-m", "pylint"}, client.command)
}

func TestParseReport(t *testing.T) {
	t.Run("clean module", func(t *testing.T) {
		report, err := ParseReport([]byte(cleanReport))
		require.NoError(t, err)

		stats := report.Stats()
		assert.True(t, stats.HasScore)
		assert.Equal(t, 9.5, stats.Score())
		assert.Equal(t, 1, stats.Convention)
		assert.Equal(t, 1, stats.MessageCount("missing-module-docstring"))
		assert.Equal(t, 1, stats.ModulesLinted)
	})

	t.Run("syntax error has no score", func(t *testing.T) {
		report, err := ParseReport([]byte(syntaxErrorReport))
		require.NoError(t, err)

		stats := report.Stats()
		assert.False(t, stats.HasScore)
		assert.True(t, stats.HasSyntaxError())
		assert.Equal(t, 1, stats.Error)
	})

	t.Run("nothing linted has no score", func(t *testing.T) {
		report, err := ParseReport([]byte(`{"messages": [], "statistics": {"messageTypeCount": {}, "modulesLinted": 0, "score": 10}}`))
		require.NoError(t, err)
		assert.False(t, report.Stats().HasScore)
	})

	t.Run("non numeric score", func(t *testing.T) {
		report, err := ParseReport([]byte(`{"messages": [], "statistics": {"messageTypeCount": {}, "modulesLinted": 1, "score": "n/a"}}`))
		require.NoError(t, err)
		assert.False(t, report.Stats().HasScore)
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := ParseReport([]byte("  \n"))
		assert.EqualError(t, err, "pylint produced no output")
	})

	t.Run("malformed output", func(t *testing.T) {
		_, err := ParseReport([]byte("************* Module app"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode pylint output")
	})
}

func TestRenderMessages(t *testing.T) {
	var buf bytes.Buffer
	err := RenderMessages(&buf, []schema.Message{
		{Symbol: "unused-import", MessageID: "W0611", Message: "Unused import os", Path: "app/views.py", Line: 2, Column: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "app/views.py:2:0: W0611: Unused import os (unused-import)\n", buf.String())
}

func TestLocalPylint_Lint(t *testing.T) {
	skipIfShellNotAvailable(t)

	tests := []struct {
		name        string
		report      string
		code        int
		expectError bool
		hasScore    bool
	}{
		{"messages only", cleanReport, 16, false, true},
		{"clean exit", cleanReport, 0, false, true},
		{"syntax error", syntaxErrorReport, 2, false, false},
		{"usage error", cleanReport, 32, true, false},
		{"no output", "", 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewLocalPylint(fakePylint(t, tt.report, tt.code))
			var out bytes.Buffer

			stats, err := client.Lint(context.Background(), "app/views.py", "", &out)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hasScore, stats.HasScore)
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestLocalPylint_LintMissingBinary(t *testing.T) {
	client := NewLocalPylint([]string{"vainupylinter-no-such-binary"})
	_, err := client.Lint(context.Background(), "a.py", "", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ensure pylint is installed")
}

func TestLocalPylint_LintCanceled(t *testing.T) {
	skipIfShellNotAvailable(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewLocalPylint(fakePylint(t, cleanReport, 0))
	_, err := client.Lint(ctx, "a.py", "", &bytes.Buffer{})
	assert.Error(t, err)
}

// TestMockLinter_Lint ensures the mock records calls and writes console output.
func TestMockLinter_Lint(t *testing.T) {
	m := new(MockLinter)
	expected := schema.Stats{GlobalNote: 8, HasScore: true}
	m.On("Lint", mock.Anything, "a.py", "", mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(3).(*bytes.Buffer).WriteString("a.py:1:0: C0114\n")
		}).
		Return(expected, nil).Once()
	m.On("Lint", mock.Anything, "b.py", "", mock.Anything).
		Return(schema.Stats{}, errors.New("boom")).Once()

	var out bytes.Buffer
	stats, err := m.Lint(context.Background(), "a.py", "", &out)
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
	assert.Equal(t, "a.py:1:0: C0114\n", out.String())

	_, err = m.Lint(context.Background(), "b.py", "", &out)
	assert.EqualError(t, err, "boom")
	m.AssertExpectations(t)
}
