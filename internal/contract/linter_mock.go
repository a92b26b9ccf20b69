package contract

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/vainuio/vainupylinter/schema"
)

// MockLinter is a mock implementation of Linter for testing.
type MockLinter struct {
	mock.Mock
}

var _ Linter = &MockLinter{} // Compile-time check

// Lint implements the Linter interface.
func (m *MockLinter) Lint(ctx context.Context, path string, rcfile string, out io.Writer) (schema.Stats, error) {
	args := m.Called(ctx, path, rcfile, out)
	return args.Get(0).(schema.Stats), args.Error(1)
}
