package schema

import "time"

// FileVerdict records what happened to one path during a run.
type FileVerdict struct {
	Path          string  `json:"path"`
	Outcome       Outcome `json:"outcome"`
	Score         float64 `json:"score"`
	HasScore      bool    `json:"has_score"`
	Threshold     float64 `json:"threshold"`
	Errors        int     `json:"errors"`
	Fatal         int     `json:"fatal"`
	CustomRan     bool    `json:"custom_ran"`
	CustomPassed  bool    `json:"custom_passed"`
	Overridden    bool    `json:"overridden"`
	CrashMessage  string  `json:"crash_message,omitempty"`
	ElapsedMillis int64   `json:"elapsed_ms"`
}

// Failing reports whether the verdict put the path on the failed list.
func (v FileVerdict) Failing() bool {
	_, ok := FailingOutcomes[v.Outcome]
	return ok
}

// RunReport is the result of one gate run over a batch of files.
type RunReport struct {
	RunID             string        `json:"run_id"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	Threshold         float64       `json:"threshold"`
	Files             []string      `json:"files"`
	Verdicts          []FileVerdict `json:"verdicts"`
	FailedFiles       []string      `json:"failed_files"`
	CustomFailedFiles []string      `json:"custom_failed_files"`
	ExitCode          int           `json:"exit_code"`
}

// Passed reports whether neither failure list has entries.
func (r RunReport) Passed() bool {
	return r.ExitCode == 0
}

// Duration returns the wall time of the run.
func (r RunReport) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// CountOutcome returns how many verdicts ended with the given outcome.
func (r RunReport) CountOutcome(outcome Outcome) int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Outcome == outcome {
			n++
		}
	}
	return n
}
