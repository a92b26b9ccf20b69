package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the per-file report.
	OutputMode string

	// Outcome represents how a single file left the gate.
	Outcome string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	NoneOut  OutputMode = "none" // default
	TableOut OutputMode = "table"
	JSONOut  OutputMode = "json"
	CSVOut   OutputMode = "csv"
)

// All file outcomes supported.
const (
	SkippedOutcome     Outcome = "skipped"      // not a Python source path
	MissingOutcome     Outcome = "missing"      // path does not exist
	CrashedOutcome     Outcome = "crashed"      // pylint could not be run or its output was unusable
	SyntaxErrorOutcome Outcome = "syntax-error" // no score and a syntax-error message
	PassedOutcome      Outcome = "passed"
	FailedOutcome      Outcome = "failed"
	ExemptOutcome      Outcome = "exempt" // failed but allowed as a test file
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// SyntaxErrorSymbol is the pylint message symbol emitted when a module cannot be parsed.
const SyntaxErrorSymbol = "syntax-error"

// PythonSourceMarker is the substring a path must contain to be linted.
const PythonSourceMarker = ".py"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	NoneOut:  {},
	TableOut: {},
	JSONOut:  {},
	CSVOut:   {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// FailingOutcomes lists the outcomes that put a path on the failed list.
var FailingOutcomes = map[Outcome]struct{}{
	CrashedOutcome:     {},
	SyntaxErrorOutcome: {},
	FailedOutcome:      {},
}
