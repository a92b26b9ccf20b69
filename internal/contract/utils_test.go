package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vainuio/vainupylinter/schema"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		outcome  schema.Outcome
		expected string
	}{
		{schema.PassedOutcome, PassValue},
		{schema.FailedOutcome, FailValue},
		{schema.CrashedOutcome, CrashedValue},
		{schema.SyntaxErrorOutcome, CrashedValue},
		{schema.ExemptOutcome, ExemptValue},
		{schema.SkippedOutcome, SkipValue},
		{schema.MissingOutcome, SkipValue},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.outcome))
			assert.Contains(t, GetColorLabel(tt.outcome), tt.expected)
		})
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"test_models.py", true},
		{"pkg/test_models.py", true},
		{"pkg/tests.py", true},
		{"pkg/mytest_helpers.py", true},
		{"pkg/models.py", false},
		{"test_pkg/models.py", false},
		{"pkg/testing.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTestFile(tt.path))
		})
	}
}

func TestIsPythonSource(t *testing.T) {
	assert.True(t, IsPythonSource("a.py"))
	assert.True(t, IsPythonSource("stubs/a.pyi"))
	assert.False(t, IsPythonSource("README.md"))
	assert.False(t, IsPythonSource("Makefile"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "module.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.py")))
	assert.False(t, FileExists(dir))
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		expected bool
	}{
		{"glob on base name", "app/test_views.py", []string{"test_*.py"}, true},
		{"glob on full path", "app/views.py", []string{"app/*.py"}, true},
		{"double star collapses", "app/views.py", []string{"**.py"}, true},
		{"directory prefix", "legacy/views.py", []string{"legacy/"}, true},
		{"nested directory", "src/legacy/views.py", []string{"legacy/"}, true},
		{"directory must be whole segment", "src/notlegacy/views.py", []string{"legacy/"}, false},
		{"extension suffix", "app/stubs.pyi", []string{".pyi"}, true},
		{"substring", "app/migrations/0001_initial.py", []string{"migrations"}, true},
		{"blank patterns ignored", "app/views.py", []string{"", "  "}, false},
		{"no match", "app/views.py", []string{"models", ".txt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesAny(tt.path, tt.patterns))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.py", TruncatePath("short.py", 20))
	assert.Equal(t, "...ong/module.py", TruncatePath("some/very/long/module.py", 16))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.json")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, FileExists(path))
}
