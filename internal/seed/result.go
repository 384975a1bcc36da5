// Package seed imports club snapshots and demo data into the roster tables.
package seed

import "fmt"

// ImportResult tracks counts and errors from an import run.
type ImportResult struct {
	PlayersImported  int
	MatchesImported  int
	FinancesImported int
	BansImported     int
	Errors           []string
}

// Add merges another ImportResult into this one.
func (r *ImportResult) Add(other ImportResult) {
	r.PlayersImported += other.PlayersImported
	r.MatchesImported += other.MatchesImported
	r.FinancesImported += other.FinancesImported
	r.BansImported += other.BansImported
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *ImportResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *ImportResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import run.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf(
		"players=%d matches=%d finances=%d bans=%d errors=%d",
		r.PlayersImported, r.MatchesImported,
		r.FinancesImported, r.BansImported,
		len(r.Errors),
	)
}
