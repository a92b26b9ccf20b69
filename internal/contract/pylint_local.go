package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/vainuio/vainupylinter/schema"
)

// PylintUsageError is the exit status bit pylint sets when it could not run at all.
// Bits 1 to 16 only report which message categories were emitted.
const PylintUsageError = 32

// LocalPylint implements the Linter interface by executing a locally
// installed pylint.
type LocalPylint struct {
	command []string
}

var _ Linter = &LocalPylint{} // Compile-time check

// NewLocalPylint creates a client that launches pylint with command,
// e.g. ["python", "-m", "pylint"].
func NewLocalPylint(command []string) *LocalPylint {
	if len(command) == 0 {
		command = []string{"python", "-m", "pylint"}
	}
	return &LocalPylint{command: command}
}

// BuildArgs returns the pylint arguments for one file.
func BuildArgs(path, rcfile string) []string {
	args := []string{path}
	if rcfile != "" {
		args = append(args, "--rcfile", rcfile)
	}
	return append(args, "--score", "no", "--output-format", "json2")
}

// Lint implements the Linter interface.
func (c *LocalPylint) Lint(ctx context.Context, path string, rcfile string, out io.Writer) (schema.Stats, error) {
	args := make([]string, 0, len(c.command)+8)
	args = append(args, c.command[1:]...)
	args = append(args, BuildArgs(path, rcfile)...)

	cmd := exec.CommandContext(ctx, c.command[0], args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = out

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 || code&PylintUsageError != 0 {
			return schema.Stats{}, fmt.Errorf("pylint exited with status %d while linting %q", code, path)
		}
	} else if err != nil {
		return schema.Stats{}, fmt.Errorf("failed to run %s: %w. Ensure pylint is installed and available on your PATH", c.command[0], err)
	}

	report, err := ParseReport(stdout.Bytes())
	if err != nil {
		return schema.Stats{}, err
	}
	if err := RenderMessages(out, report.Messages); err != nil {
		return schema.Stats{}, err
	}
	return report.Stats(), nil
}

// Report is the json2 document pylint prints.
type Report struct {
	Messages   []schema.Message `json:"messages"`
	Statistics struct {
		MessageTypeCount map[string]int `json:"messageTypeCount"`
		ModulesLinted    int            `json:"modulesLinted"`
		Score            any            `json:"score"`
	} `json:"statistics"`
}

// ParseReport decodes pylint json2 output.
func ParseReport(data []byte) (*Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("pylint produced no output")
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode pylint output: %w", err)
	}
	return &report, nil
}

// Stats converts the report into statistics.
//
// pylint always prints a score in json2, computed as if the module had one
// statement. A module with a syntax error or one excluded by configuration has
// no statements, so those cases are reported without a score.
func (r *Report) Stats() schema.Stats {
	counts := r.Statistics.MessageTypeCount
	stats := schema.Stats{
		Fatal:         counts["fatal"],
		Error:         counts["error"],
		Warning:       counts["warning"],
		Refactor:      counts["refactor"],
		Convention:    counts["convention"],
		Info:          counts["info"],
		ByMsg:         make(map[string]int, len(r.Messages)),
		ModulesLinted: r.Statistics.ModulesLinted,
	}
	for _, m := range r.Messages {
		stats.ByMsg[m.Symbol]++
	}

	score, numeric := r.Statistics.Score.(float64)
	if numeric && stats.ModulesLinted > 0 && !stats.HasSyntaxError() {
		stats.GlobalNote = score
		stats.HasScore = true
	}
	return stats
}

// RenderMessages writes messages in pylint's text layout, one per line.
func RenderMessages(w io.Writer, messages []schema.Message) error {
	for _, m := range messages {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n", m.Path, m.Line, m.Column, m.MessageID, m.Message, m.Symbol); err != nil {
			return err
		}
	}
	return nil
}
