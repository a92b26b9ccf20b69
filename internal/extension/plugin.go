package extension

import (
	"fmt"
	"plugin"

	"github.com/vainuio/vainupylinter/schema"
)

// loadPlugin opens a Go plugin and picks up whichever custom functions it exports.
// Exported functions and exported variables of the function types are both accepted.
func loadPlugin(path string) (Extension, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return Extension{}, fmt.Errorf("%w: %s: %v", ErrExtensionNotFound, path, err)
	}

	var ext Extension

	if sym, err := p.Lookup(RulesSymbol); err == nil {
		switch fn := sym.(type) {
		case func(schema.Stats, string) (bool, bool):
			ext.Rules = fn
		case *RulesFunc:
			ext.Rules = *fn
		case *func(schema.Stats, string) (bool, bool):
			ext.Rules = *fn
		default:
			return Extension{}, fmt.Errorf("plugin %s: %s has unsupported type %T", path, RulesSymbol, sym)
		}
	}

	if sym, err := p.Lookup(ScoreSymbol); err == nil {
		switch fn := sym.(type) {
		case func(schema.Stats) float64:
			ext.Score = fn
		case *ScoreFunc:
			ext.Score = *fn
		case *func(schema.Stats) float64:
			ext.Score = *fn
		default:
			return Extension{}, fmt.Errorf("plugin %s: %s has unsupported type %T", path, ScoreSymbol, sym)
		}
	}

	if sym, err := p.Lookup(ThresholdingSymbol); err == nil {
		switch fn := sym.(type) {
		case func(float64, float64, string) bool:
			ext.Thresholding = fn
		case *ThresholdFunc:
			ext.Thresholding = *fn
		case *func(float64, float64, string) bool:
			ext.Thresholding = *fn
		default:
			return Extension{}, fmt.Errorf("plugin %s: %s has unsupported type %T", path, ThresholdingSymbol, sym)
		}
	}

	return ext, nil
}
