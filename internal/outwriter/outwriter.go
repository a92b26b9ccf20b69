// Package outwriter has output and writer logic for run reports.
package outwriter

import (
	"context"

	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

// OutWriter writes the per-file report of a run in the configured format.
type OutWriter struct {
	cfg *contract.Config
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter(cfg *contract.Config) *OutWriter {
	return &OutWriter{cfg: cfg}
}

// WriteReport writes report using the configured output format.
// Nothing is written for the none format.
func (ow *OutWriter) WriteReport(_ context.Context, report schema.RunReport) error {
	return WriteRunReport(report, ow.cfg)
}
