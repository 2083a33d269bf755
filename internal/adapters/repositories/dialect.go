package repositories

import (
	"strconv"
	"strings"
)

// Dialect selects the bind parameter style of the SQL driver.
type Dialect int

const (
	// SQLite (modernc.org/sqlite) uses ? placeholders.
	SQLite Dialect = iota
	// Postgres (pgx stdlib) uses $1, $2, ... placeholders.
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders for the dialect. Queries must not contain
// literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
