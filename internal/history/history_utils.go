package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vainuio/vainupylinter/schema"
)

// quoteTableName quotes a table name for the SQL dialect of the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholder returns the n-th (1-based) bind parameter for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// placeholders returns a comma-separated list of count bind parameters.
func placeholders(backend schema.DatabaseBackend, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = placeholder(backend, i+1)
	}
	return strings.Join(parts, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// timeColumn scans a timestamp stored natively or as RFC3339 text.
type timeColumn struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (tc *timeColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		tc.Time, tc.Valid = time.Time{}, false
		return nil
	case time.Time:
		tc.Time, tc.Valid = v, true
		return nil
	case string:
		return tc.parse(v)
	case []byte:
		return tc.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a time column", src)
	}
}

func (tc *timeColumn) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	tc.Time, tc.Valid = t, true
	return nil
}
