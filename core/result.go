package core

import "github.com/vainuio/vainupylinter/schema"

// RunResult is the evolving state of a run.
type RunResult struct {
	// FName is the file currently, or most recently, linted.
	FName string

	// Stats are the statistics of FName, nil if it was never linted.
	Stats *schema.Stats

	// FailedFiles lists paths that failed the standard checks, in order and
	// without de-duplication.
	FailedFiles []string

	// CustomFailedFiles lists paths the custom rules rejected.
	CustomFailedFiles []string

	// Verdicts has one entry per processed path.
	Verdicts []schema.FileVerdict
}

// Reset clears everything so the runner can be reused for another batch.
func (r *RunResult) Reset() {
	*r = RunResult{}
}

// ExitCode is 0 when neither failure list has entries, 1 otherwise.
func (r *RunResult) ExitCode() int {
	if len(r.FailedFiles) == 0 && len(r.CustomFailedFiles) == 0 {
		return 0
	}
	return 1
}
