package extension

import (
	"errors"
	"fmt"
	"os"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
	"gopkg.in/yaml.v3"
)

// Policy is a declarative custom extension read from YAML. Each section that is
// present in the file provides the matching custom function.
//
// Example:
//
//	rules:
//	  forbidden_messages: [print-used, wildcard-import]
//	  max_messages:
//	    too-many-branches: 2
//	  max_severity:
//	    convention: 10
//	  exempt: ["scripts/"]
//	  override: true
//	score:
//	  penalties:
//	    wildcard-import: 0.5
//	  floor: 0
//	thresholds:
//	  paths:
//	    - pattern: "legacy/"
//	      threshold: 6.0
type Policy struct {
	Rules      *RulesPolicy      `yaml:"rules"`
	Score      *ScorePolicy      `yaml:"score"`
	Thresholds *ThresholdsPolicy `yaml:"thresholds"`
}

// RulesPolicy fails a file on forbidden or too frequent messages.
type RulesPolicy struct {
	ForbiddenMessages []string       `yaml:"forbidden_messages"`
	MaxMessages       map[string]int `yaml:"max_messages"`
	MaxSeverity       map[string]int `yaml:"max_severity"`
	MaxErrors         *int           `yaml:"max_errors"`
	MaxWarnings       *int           `yaml:"max_warnings"`
	Exempt            []string       `yaml:"exempt"`
	Override          bool           `yaml:"override"`
}

// ScorePolicy subtracts weighted message counts from the pylint score.
type ScorePolicy struct {
	Penalties map[string]float64 `yaml:"penalties"`
	Floor     float64            `yaml:"floor"`
}

// ThresholdsPolicy assigns thresholds to paths. The first matching pattern wins.
type ThresholdsPolicy struct {
	Paths []PathThreshold `yaml:"paths"`
}

// PathThreshold binds a path pattern to a threshold.
type PathThreshold struct {
	Pattern   string  `yaml:"pattern"`
	Threshold float64 `yaml:"threshold"`
}

// LoadPolicy reads and validates a policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrExtensionNotFound, path)
		}
		return nil, fmt.Errorf("reading policy %q: %w", path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes and validates policy YAML.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// severities are the message types pylint counts.
var severities = map[string]struct{}{
	"fatal": {}, "error": {}, "warning": {}, "refactor": {}, "convention": {}, "info": {},
}

func (p *Policy) validate() error {
	if p.Rules != nil {
		for symbol, limit := range p.Rules.MaxMessages {
			if limit < 0 {
				return fmt.Errorf("rules.max_messages.%s must not be negative (received %d)", symbol, limit)
			}
		}
		for severity, limit := range p.Rules.MaxSeverity {
			if _, ok := severities[severity]; !ok {
				return fmt.Errorf("rules.max_severity.%s is not a pylint message type", severity)
			}
			if limit < 0 {
				return fmt.Errorf("rules.max_severity.%s must not be negative (received %d)", severity, limit)
			}
		}
	}
	if p.Score != nil {
		for symbol, weight := range p.Score.Penalties {
			if weight < 0 {
				return fmt.Errorf("score.penalties.%s must not be negative (received %g)", symbol, weight)
			}
		}
	}
	if p.Thresholds != nil {
		for i, pt := range p.Thresholds.Paths {
			if pt.Pattern == "" {
				return fmt.Errorf("thresholds.paths[%d].pattern must not be empty", i)
			}
		}
	}
	return nil
}

// Extension converts the policy into custom functions.
func (p *Policy) Extension() Extension {
	var ext Extension
	if p.Rules != nil {
		ext.Rules = p.Rules.Check
	}
	if p.Score != nil {
		ext.Score = p.Score.Apply
	}
	if p.Thresholds != nil {
		ext.Thresholding = p.Thresholds.Check
	}
	return ext
}

// Check implements RulesFunc.
func (r *RulesPolicy) Check(stats schema.Stats, path string) (bool, bool) {
	if contract.MatchesAny(path, r.Exempt) {
		return true, r.Override
	}

	passed := true
	for _, symbol := range r.ForbiddenMessages {
		if stats.MessageCount(symbol) > 0 {
			passed = false
		}
	}
	for symbol, limit := range r.MaxMessages {
		if stats.MessageCount(symbol) > limit {
			passed = false
		}
	}
	for severity, limit := range r.MaxSeverity {
		if stats.CountBySeverity(severity) > limit {
			passed = false
		}
	}
	if r.MaxErrors != nil && stats.CountBySeverity("error") > *r.MaxErrors {
		passed = false
	}
	if r.MaxWarnings != nil && stats.CountBySeverity("warning") > *r.MaxWarnings {
		passed = false
	}
	return passed, r.Override
}

// Apply implements ScoreFunc. Files without a pylint score keep a zero score.
func (s *ScorePolicy) Apply(stats schema.Stats) float64 {
	if !stats.HasScore {
		return 0
	}

	var penalty float64
	for symbol, weight := range s.Penalties {
		penalty += weight * float64(stats.MessageCount(symbol))
	}
	if penalty == 0 {
		return stats.GlobalNote
	}

	score := stats.GlobalNote - penalty
	if score < s.Floor {
		return s.Floor
	}
	return score
}

// Check implements ThresholdFunc.
func (t *ThresholdsPolicy) Check(score, threshold float64, path string) bool {
	return score >= t.ThresholdFor(path, threshold)
}

// ThresholdFor returns the threshold of the first pattern matching path, or fallback.
func (t *ThresholdsPolicy) ThresholdFor(path string, fallback float64) float64 {
	for _, pt := range t.Paths {
		if contract.MatchesAny(path, []string{pt.Pattern}) {
			return pt.Threshold
		}
	}
	return fallback
}
