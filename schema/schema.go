// Package schema has models and constants shared by all parts of vainupylinter.
package schema

// Stats is the statistics pylint reports for one linted file.
// It is passed through to custom extensions unvalidated.
type Stats struct {
	// GlobalNote is the pylint score. It is only meaningful when HasScore is set.
	GlobalNote float64 `json:"global_note"`
	HasScore   bool    `json:"has_score"`

	Fatal      int `json:"fatal"`
	Error      int `json:"error"`
	Warning    int `json:"warning"`
	Refactor   int `json:"refactor"`
	Convention int `json:"convention"`
	Info       int `json:"info"`

	// ByMsg maps a message symbol (e.g. "syntax-error") to its count.
	ByMsg map[string]int `json:"by_msg"`

	ModulesLinted int `json:"modules_linted"`
}

// Score returns the global note, or zero when pylint produced none.
func (s Stats) Score() float64 {
	if !s.HasScore {
		return 0
	}
	return s.GlobalNote
}

// MessageCount returns how many times the given symbol was reported.
func (s Stats) MessageCount(symbol string) int {
	if s.ByMsg == nil {
		return 0
	}
	return s.ByMsg[symbol]
}

// HasSyntaxError reports whether pylint flagged the module as unparsable.
func (s Stats) HasSyntaxError() bool {
	return s.MessageCount(SyntaxErrorSymbol) > 0
}

// CountBySeverity returns the count for a pylint message type such as "error".
func (s Stats) CountBySeverity(severity string) int {
	switch severity {
	case "fatal":
		return s.Fatal
	case "error":
		return s.Error
	case "warning":
		return s.Warning
	case "refactor":
		return s.Refactor
	case "convention":
		return s.Convention
	case "info":
		return s.Info
	default:
		return 0
	}
}

// Message is a single pylint diagnostic.
type Message struct {
	Type      string `json:"type"`
	Symbol    string `json:"symbol"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}
