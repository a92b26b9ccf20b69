package history

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/schema"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(runID string, startTime time.Time, threshold float64, configParams map[string]any) error {
	args := m.Called(runID, startTime, threshold, configParams)
	return args.Error(0)
}

// RecordFileVerdict implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFileVerdict(runID string, recordedAt time.Time, verdict schema.FileVerdict) error {
	args := m.Called(runID, recordedAt, verdict)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID string, endTime time.Time, totalFiles, failedFiles, customFailed, exitCode int) error {
	args := m.Called(runID, endTime, totalFiles, failedFiles, customFailed, exitCode)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.HistoryStatus)
	return status, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllFileVerdicts implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllFileVerdicts() ([]schema.FileVerdictRecord, error) {
	args := m.Called()
	verdicts, _ := args.Get(0).([]schema.FileVerdictRecord)
	return verdicts, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
