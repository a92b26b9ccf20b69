package core

import "strings"

// reportResults logs the final summary and returns the exit code.
func (r *Runner) reportResults() int {
	exitCode := r.result.ExitCode()
	if exitCode == 0 {
		r.logger.Info(separator)
		r.logger.Info("PYLINT WAS SUCCESSFUL!")
		r.logger.Info(separator)
		return exitCode
	}

	r.logger.Warn(separator)
	r.logger.Warn("PYLINTING FAILED")
	if len(r.result.FailedFiles) > 0 {
		r.logger.Warn(separator)
		r.logger.Warn("THE FOLLOWING FILES DID NOT PASS.")
		r.logger.Warn(strings.Join(r.result.FailedFiles, "\n"))
		r.logger.Info(separator)
	}
	if len(r.result.CustomFailedFiles) > 0 {
		r.logger.Warn(separator)
		r.logger.Warn("THE FOLLOWING FILES FAILED CUSTOM CHECKS.")
		r.logger.Warn(strings.Join(r.result.CustomFailedFiles, "\n"))
		r.logger.Info(separator)
	}
	return exitCode
}
