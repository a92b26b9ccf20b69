package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/vainuio/vainupylinter/schema"
)

// Outcome label constants.
const (
	PassValue    = "PASS"
	FailValue    = "FAIL"
	ExemptValue  = "EXEMPT"
	SkipValue    = "SKIP"
	CrashedValue = "CRASH"
)

// Color variables for console output.
var (
	FailColor   = color.New(color.FgRed, color.Bold)     // FailColor represents a failed check.
	CrashColor  = color.New(color.FgMagenta, color.Bold) // CrashColor represents a pylint crash or syntax error.
	ExemptColor = color.New(color.FgYellow)              // ExemptColor represents an allowed test file.
	SkipColor   = color.New(color.FgCyan)                // SkipColor represents a file that was not linted.
	PassColor   = color.New(color.FgGreen)               // PassColor represents a passing file.
)

// GetPlainLabel returns a plain text label for an outcome. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(outcome schema.Outcome) string {
	switch outcome {
	case schema.PassedOutcome:
		return PassValue
	case schema.FailedOutcome:
		return FailValue
	case schema.CrashedOutcome, schema.SyntaxErrorOutcome:
		return CrashedValue
	case schema.ExemptOutcome:
		return ExemptValue
	default:
		return SkipValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(outcome schema.Outcome) string {
	text := GetPlainLabel(outcome)

	switch text {
	case PassValue:
		return PassColor.Sprint(text)
	case FailValue:
		return FailColor.Sprint(text)
	case CrashedValue:
		return CrashColor.Sprint(text)
	case ExemptValue:
		return ExemptColor.Sprint(text)
	default:
		return SkipColor.Sprint(text)
	}
}

// IsPythonSource reports whether path should be handed to pylint.
func IsPythonSource(path string) bool {
	return strings.Contains(path, schema.PythonSourceMarker)
}

// IsTestFile reports whether path looks like a Python test module:
// its base name contains "test_" or the path contains "tests.py".
func IsTestFile(path string) bool {
	return strings.Contains(filepath.Base(path), "test_") || strings.Contains(path, "tests.py")
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// MatchesAny returns true if the given path matches any of the patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// Anything else matches as a substring.
func MatchesAny(path string, patterns []string) bool {
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}

		if strings.ContainsAny(pat, "*?[") {
			glob := strings.ReplaceAll(pat, "**", "*")
			if ok, err := filepath.Match(glob, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *_test.py)
			if ok, err := filepath.Match(glob, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(pat, "/"):
			if strings.HasPrefix(path, pat) || strings.Contains(path, "/"+pat) {
				return true
			}
		case strings.HasPrefix(pat, "."):
			if strings.HasSuffix(path, pat) {
				return true
			}
		case strings.Contains(path, pat):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vainupylinter_history.db"
	}
	return filepath.Join(homeDir, ".vainupylinter_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
