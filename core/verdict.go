package core

import (
	"fmt"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

// checkCustomRules runs the custom rule once per linted file. A rejection is
// recorded on the custom failed list regardless of the final verdict.
// Without a rule it returns (false, false).
func (r *Runner) checkCustomRules(stats schema.Stats, verdict *schema.FileVerdict) (passed, override bool) {
	if r.ext.Rules == nil {
		return false, false
	}
	passed, override = r.ext.Rules(stats, verdict.Path)
	verdict.CustomRan = true
	verdict.CustomPassed = passed
	if !passed {
		r.logger.Warn(fmt.Sprintf("%s FAILED CUSTOM CHECKS", verdict.Path))
		r.result.CustomFailedFiles = append(r.result.CustomFailedFiles, verdict.Path)
	}
	return passed, override
}

// checkNoSilentCrash catches runs where pylint gave up without an error.
// No score plus a syntax-error message is a failure unless a passing custom
// rule overrides it. No score without one means the file was excluded by the
// pylint configuration, which is fine.
func (r *Runner) checkNoSilentCrash(stats schema.Stats, override bool, verdict *schema.FileVerdict) bool {
	if stats.HasScore {
		return true
	}
	if stats.HasSyntaxError() && !override {
		r.logger.Warn("\n" + separator)
		r.logger.Warn("PYLINT FAILED BECAUSE SYNTAX ERROR.")
		r.logger.Warn(separator)
		r.logger.Warn("")
		r.result.FailedFiles = append(r.result.FailedFiles, verdict.Path)
		verdict.Outcome = schema.SyntaxErrorOutcome
		return false
	}
	r.logger.Info("\n" + separator)
	r.logger.Info("FILE WAS IGNORED.")
	r.logger.Info(separator)
	return true
}

// score returns the custom score when one is configured, else the pylint score.
func (r *Runner) score(stats schema.Stats) float64 {
	if r.ext.Score != nil {
		return r.ext.Score(stats)
	}
	return stats.Score()
}

// checkThreshold applies the custom thresholding, else score >= threshold.
func (r *Runner) checkThreshold(score float64, fname string) bool {
	if r.ext.Thresholding != nil {
		return r.ext.Thresholding(score, r.cfg.Threshold, fname)
	}
	if score < r.cfg.Threshold {
		r.logger.Warn(fmt.Sprintf("SCORE %v IS BELOW THE THRESHOLD %v for %s", score, r.cfg.Threshold, fname))
		return false
	}
	return true
}

// evalResults decides the standard verdict, lets an overriding custom rule
// replace it and records the file as passed, exempt or failed.
func (r *Runner) evalResults(stats schema.Stats, customPassed, override bool, verdict *schema.FileVerdict) {
	fname := verdict.Path
	score := r.score(stats)
	verdict.Score = score
	filePassed := true

	r.logger.Info("\n" + separator + "\n")
	r.logger.Info(fmt.Sprintf("Your code has been rated at %.2f/10\n", score))
	r.logger.Info("")
	r.logger.Info(separator)

	if stats.Fatal > 0 {
		r.logger.Warn(fmt.Sprintf("FATAL ERROR(S) DETECTED IN %s.", fname))
		filePassed = false
	}
	if stats.Error > 0 && !r.cfg.AllowErrors {
		r.logger.Warn(fmt.Sprintf("ERROR(S) DETECTED IN %s.", fname))
		filePassed = false
	}
	// A zero score counts as no score and skips the threshold.
	if score != 0 {
		filePassed = filePassed && r.checkThreshold(score, fname)
	}
	if r.ext.Rules != nil && customPassed != filePassed && override {
		r.logger.Info(fmt.Sprintf("OVERRIDING STANDARD RESULT WITH CUSTOM FROM %s TO %s.", titleBool(filePassed), titleBool(customPassed)))
		filePassed = customPassed
		verdict.Overridden = true
	}

	switch {
	case !filePassed && r.cfg.IgnoreTests && contract.IsTestFile(fname):
		r.logger.Info(fmt.Sprintf("ASSUMING %s IS TEST FILE. ALLOWING.", fname))
		r.logger.Info(separator + "\n")
		verdict.Outcome = schema.ExemptOutcome
	case filePassed:
		r.logger.Info(fmt.Sprintf("FILE %s PASSED PYLINT, THRESHOLD %v", fname, r.cfg.Threshold))
		verdict.Outcome = schema.PassedOutcome
	default:
		r.result.FailedFiles = append(r.result.FailedFiles, fname)
		verdict.Outcome = schema.FailedOutcome
	}
	r.logger.Warn(separator)
}

// titleBool renders a boolean as True or False.
func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
