package history

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vainuio/vainupylinter/schema"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMemoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	return impl
}

func TestNoneBackendStore(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.BeginRun("run", testStart, 9.2, nil))
	assert.NoError(t, store.RecordFileVerdict("run", testStart, schema.FileVerdict{Path: "a.py"}))
	assert.NoError(t, store.EndRun("run", testStart, 1, 0, 0, 0))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)
	verdicts, err := store.GetAllFileVerdicts()
	require.NoError(t, err)
	assert.Nil(t, verdicts)
	assert.NoError(t, store.Close())
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newMemoryStore(t)
	runID := "6f1c2b9e-0000-4000-8000-000000000001"

	require.NoError(t, store.BeginRun(runID, testStart, 9.2, map[string]any{"thresh": 9.2}))
	require.NoError(t, store.RecordFileVerdict(runID, testStart.Add(time.Second), schema.FileVerdict{
		Path: "app/views.py", Outcome: schema.PassedOutcome, Score: 9.75, HasScore: true, Threshold: 9.2,
	}))
	require.NoError(t, store.RecordFileVerdict(runID, testStart.Add(2*time.Second), schema.FileVerdict{
		Path: "app/models.py", Outcome: schema.FailedOutcome, Score: 6.5, HasScore: true, Threshold: 9.2,
		Errors: 2, Fatal: 1, CustomRan: true, CustomPassed: false, Overridden: true,
	}))
	require.NoError(t, store.RecordFileVerdict(runID, testStart.Add(3*time.Second), schema.FileVerdict{
		Path: "broken.py", Outcome: schema.CrashedOutcome, Threshold: 9.2,
	}))
	require.NoError(t, store.EndRun(runID, testStart.Add(1500*time.Millisecond), 3, 2, 1, 1))

	t.Run("runs", func(t *testing.T) {
		runs, err := store.GetAllRuns()
		require.NoError(t, err)
		require.Len(t, runs, 1)

		run := runs[0]
		assert.Equal(t, runID, run.RunID)
		assert.True(t, testStart.Equal(run.StartTime))
		require.NotNil(t, run.EndTime)
		assert.True(t, testStart.Add(1500*time.Millisecond).Equal(*run.EndTime))
		require.NotNil(t, run.DurationMs)
		assert.Equal(t, int64(1500), *run.DurationMs)
		assert.InDelta(t, 9.2, run.Threshold, 0.0001)
		assert.Equal(t, int32(3), run.TotalFiles)
		assert.Equal(t, int32(2), run.FailedFiles)
		assert.Equal(t, int32(1), run.CustomFailed)
		assert.Equal(t, int32(1), run.ExitCode)
		require.NotNil(t, run.ConfigParams)
		assert.JSONEq(t, `{"thresh":9.2}`, *run.ConfigParams)
	})

	t.Run("verdicts", func(t *testing.T) {
		verdicts, err := store.GetAllFileVerdicts()
		require.NoError(t, err)
		require.Len(t, verdicts, 3)

		assert.Equal(t, "app/views.py", verdicts[0].FilePath)
		assert.Equal(t, "passed", verdicts[0].Outcome)
		require.NotNil(t, verdicts[0].Score)
		assert.InDelta(t, 9.75, *verdicts[0].Score, 0.0001)
		assert.Nil(t, verdicts[0].CustomPassed)
		assert.True(t, testStart.Add(time.Second).Equal(verdicts[0].RecordedAt))

		assert.Equal(t, int32(2), verdicts[1].ErrorCount)
		assert.Equal(t, int32(1), verdicts[1].FatalCount)
		require.NotNil(t, verdicts[1].CustomPassed)
		assert.False(t, *verdicts[1].CustomPassed)
		assert.True(t, verdicts[1].Overridden)

		assert.Equal(t, "crashed", verdicts[2].Outcome)
		assert.Nil(t, verdicts[2].Score)
	})

	t.Run("status", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, "sqlite", status.Backend)
		assert.Equal(t, 1, status.TotalRuns)
		assert.Equal(t, 1, status.FailedRuns)
		assert.Equal(t, runID, status.LastRunID)
		assert.True(t, testStart.Equal(status.LastRunTime))
		assert.True(t, testStart.Equal(status.OldestRunTime))
		assert.Equal(t, 3, status.TotalFiles)
		assert.Equal(t, int64(1), status.TableSizes[runsTable])
		assert.Equal(t, int64(3), status.TableSizes[fileVerdictsTable])
	})
}

func TestSQLiteStoreOrdering(t *testing.T) {
	store := newMemoryStore(t)

	for i, id := range []string{"first", "second", "third"} {
		start := testStart.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.BeginRun(id, start, 9, nil))
		require.NoError(t, store.EndRun(id, start.Add(time.Second), 1, 0, 0, 0))
	}

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, 0, status.FailedRuns)
	assert.Equal(t, "third", status.LastRunID)
	assert.True(t, testStart.Equal(status.OldestRunTime))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "first", runs[0].RunID)
	assert.Equal(t, "third", runs[2].RunID)
}

func TestEndRunUnknownRun(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndRun("missing", testStart, 0, 0, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestDuplicateRunID(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.BeginRun("dup", testStart, 9, nil))
	assert.Error(t, store.BeginRun("dup", testStart, 9, nil))
}

func TestInitHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	t.Cleanup(func() {
		Manager.Lock()
		Manager.store = nil
		Manager.Unlock()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})

	require.NoError(t, InitHistory(schema.SQLiteBackend, dbPath))
	first := Manager.GetHistoryStore()
	require.NotNil(t, first)

	// Repeated initialization keeps the first store
	require.NoError(t, InitHistory(schema.SQLiteBackend, filepath.Join(t.TempDir(), "other.db")))
	assert.Same(t, first, Manager.GetHistoryStore())

	CloseHistory()
	CloseHistory()

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o600))

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, filepath.Join(t.TempDir(), "nope.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearHistory("oracle", "", ""))
	})
}

func TestMigrateHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	steps := []struct {
		target   int
		expected string
	}{
		{-1, "Successfully migrated from version 0 to version 3"},
		{-1, "No migration needed. Database is already at the latest version."},
		{1, "Successfully migrated from version 3 to version 1"},
		{0, "Successfully rolled back from version 1 to version 0"},
		{0, "No migration needed. Database is already at version 0"},
		{2, "Successfully migrated from version 0 to version 2"},
	}

	for _, step := range steps {
		var out bytes.Buffer
		require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, step.target, &out), "target %d", step.target)
		assert.Contains(t, out.String(), step.expected)
	}

	// The migrated schema is usable by the store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.BeginRun("after-migrate", testStart, 9.2, nil))
}

func TestMigrateHistory_None(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestRecorder(t *testing.T) {
	report := schema.RunReport{
		RunID:     "run-1",
		StartTime: testStart,
		EndTime:   testStart.Add(time.Second),
		Threshold: 9.2,
		Verdicts: []schema.FileVerdict{
			{Path: "a.py", Outcome: schema.PassedOutcome, ElapsedMillis: 100},
			{Path: "b.py", Outcome: schema.FailedOutcome, ElapsedMillis: 200},
		},
		FailedFiles:       []string{"b.py"},
		CustomFailedFiles: []string{},
		ExitCode:          1,
	}
	params := map[string]any{"thresh": 9.2}

	t.Run("records run", func(t *testing.T) {
		store := &MockHistoryStore{}
		mgr := &MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", "run-1", testStart, 9.2, params).Return(nil)
		store.On("RecordFileVerdict", "run-1", testStart.Add(100*time.Millisecond), report.Verdicts[0]).Return(nil)
		store.On("RecordFileVerdict", "run-1", testStart.Add(300*time.Millisecond), report.Verdicts[1]).Return(nil)
		store.On("EndRun", "run-1", testStart.Add(time.Second), 2, 1, 0, 1).Return(nil)

		require.NoError(t, NewRecorder(mgr, params).WriteReport(context.Background(), report))
		store.AssertExpectations(t)
	})

	t.Run("no store", func(t *testing.T) {
		mgr := &MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(nil)
		assert.NoError(t, NewRecorder(mgr, params).WriteReport(context.Background(), report))
	})

	t.Run("begin fails", func(t *testing.T) {
		store := &MockHistoryStore{}
		mgr := &MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

		err := NewRecorder(mgr, params).WriteReport(context.Background(), report)
		require.EqualError(t, err, "boom")
		store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("canceled context", func(t *testing.T) {
		store := &MockHistoryStore{}
		mgr := &MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(store)
		store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewRecorder(mgr, params).WriteReport(ctx, report)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRecorderWithSQLite(t *testing.T) {
	store := newMemoryStore(t)
	mgr := &HistoryStoreManager{store: store}

	report := schema.RunReport{
		RunID:     "run-sqlite",
		StartTime: testStart,
		EndTime:   testStart.Add(2 * time.Second),
		Threshold: 8,
		Verdicts: []schema.FileVerdict{
			{Path: "a.py", Outcome: schema.ExemptOutcome, Score: 4, HasScore: true, Threshold: 8},
		},
	}
	require.NoError(t, NewRecorder(mgr, nil).WriteReport(context.Background(), report))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 0, status.FailedRuns)
	assert.Equal(t, int64(1), status.TableSizes[fileVerdictsTable])
}

func TestExportHistory(t *testing.T) {
	t.Run("writes both files", func(t *testing.T) {
		store := newMemoryStore(t)
		require.NoError(t, store.BeginRun("run-1", testStart, 9.2, nil))
		require.NoError(t, store.RecordFileVerdict("run-1", testStart, schema.FileVerdict{Path: "a.py", Outcome: schema.PassedOutcome, Score: 10, HasScore: true}))
		require.NoError(t, store.EndRun("run-1", testStart.Add(time.Second), 1, 0, 0, 0))

		prefix := filepath.Join(t.TempDir(), "export")
		var out bytes.Buffer
		require.NoError(t, ExportHistory(store, prefix, &out))

		for _, suffix := range []string{".runs.parquet", ".file_verdicts.parquet"} {
			info, err := os.Stat(prefix + suffix)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		}
		assert.Contains(t, out.String(), "Exported 1 runs")
		assert.Contains(t, out.String(), "Exported 1 file verdicts")
	})

	t.Run("requires output file", func(t *testing.T) {
		err := ExportHistory(&MockHistoryStore{}, "", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file")
	})

	t.Run("no data", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)
		err := ExportHistory(store, filepath.Join(t.TempDir(), "x"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no run history")
	})

	t.Run("nil store", func(t *testing.T) {
		assert.Error(t, ExportHistory(nil, "out", &bytes.Buffer{}))
	})
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     2,
		FailedRuns:    1,
		LastRunID:     "abc",
		LastRunTime:   testStart,
		OldestRunTime: testStart,
		TotalFiles:    7,
		TableSizes:    map[string]int64{runsTable: 2, fileVerdictsTable: 7},
	})

	out := buf.String()
	assert.Contains(t, out, "History Backend: sqlite")
	assert.Contains(t, out, "Failed Runs: 1")
	assert.Contains(t, out, "Last Run ID: abc")
	assert.Contains(t, out, "Total Files Checked: 7")
	assert.Contains(t, out, "vainupylinter_runs: 2 rows")

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())
}

func TestDialectHelpers(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))

	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))

	assert.Equal(t, "2024-05-01T12:00:00Z", formatTime(testStart, schema.SQLiteBackend))
	assert.Equal(t, testStart, formatTime(testStart, schema.PostgreSQLBackend))
}

func TestTimeColumnScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		valid   bool
		wantErr bool
	}{
		{"nil", nil, false, false},
		{"native", testStart, true, false},
		{"text", "2024-05-01T12:00:00Z", true, false},
		{"bytes", []byte("2024-05-01T12:00:00.5Z"), true, false},
		{"garbage", "yesterday", false, true},
		{"int", int64(3), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tc timeColumn
			err := tc.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, tc.Valid)
		})
	}
}

func TestMySQLDSNForcesParseTime(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/history")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}
