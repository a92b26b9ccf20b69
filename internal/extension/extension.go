// Package extension resolves the optional custom rule, score and threshold
// functions that can refine or override the standard pylint verdict.
//
// A custom path is resolved, in order, as:
//   - a name registered in-process with Register,
//   - a declarative policy file ending in .yaml or .yml,
//   - a Go plugin (.so) built with -buildmode=plugin that exports any of
//     CustomRules, CustomScore and CustomThresholding.
package extension

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vainuio/vainupylinter/schema"
)

// Symbol names looked up in plugins and reported in warnings.
const (
	RulesSymbol        = "CustomRules"
	ScoreSymbol        = "CustomScore"
	ThresholdingSymbol = "CustomThresholding"
)

// RulesFunc decides whether a file passes custom checks and whether that
// decision may override the standard verdict.
type RulesFunc func(stats schema.Stats, path string) (passed bool, override bool)

// ScoreFunc replaces the pylint score.
type ScoreFunc func(stats schema.Stats) float64

// ThresholdFunc replaces the score >= threshold comparison.
type ThresholdFunc func(score, threshold float64, path string) bool

// Extension holds the resolved custom functions. Each one is independently optional.
type Extension struct {
	Rules        RulesFunc
	Score        ScoreFunc
	Thresholding ThresholdFunc
}

// Empty reports whether no custom function is set.
func (e Extension) Empty() bool {
	return e.Rules == nil && e.Score == nil && e.Thresholding == nil
}

var (
	// ErrExtensionNotFound is returned when a custom path cannot be located or loaded.
	ErrExtensionNotFound = errors.New("custom extension not found")

	// ErrNoCustomFunctions is returned when a custom path was given but defines none of the custom functions.
	ErrNoCustomFunctions = errors.New("custom extension given but no CustomRules, CustomScore or CustomThresholding found")
)

// Load resolves the custom extension at path. An empty path yields an empty
// Extension without touching the filesystem.
func Load(path string, logger *slog.Logger) (Extension, error) {
	if path == "" {
		return Extension{}, nil
	}

	ext, err := resolve(path)
	if err != nil {
		return Extension{}, err
	}

	if ext.Rules == nil {
		logger.Warn(fmt.Sprintf("No '%s' defined in %s", RulesSymbol, path))
	}
	if ext.Score == nil {
		logger.Warn(fmt.Sprintf("No '%s' defined in %s", ScoreSymbol, path))
	}
	if ext.Thresholding == nil {
		logger.Warn(fmt.Sprintf("No '%s' defined in %s", ThresholdingSymbol, path))
	}
	if ext.Empty() {
		return Extension{}, fmt.Errorf("%w: %s", ErrNoCustomFunctions, path)
	}
	return ext, nil
}

// registeredList renders the registered names for error messages.
func registeredList() string {
	names := Registered()
	if len(names) == 0 {
		return "none registered"
	}
	return "registered: " + strings.Join(names, ", ")
}

func resolve(path string) (Extension, error) {
	if ext, ok := Lookup(path); ok {
		return ext, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		policy, err := LoadPolicy(path)
		if err != nil {
			return Extension{}, err
		}
		return policy.Extension(), nil
	case ".so":
		return loadPlugin(path)
	default:
		return Extension{}, fmt.Errorf("%w: %q is not a registered extension (%s), a policy file or a plugin",
			ErrExtensionNotFound, path, registeredList())
	}
}
