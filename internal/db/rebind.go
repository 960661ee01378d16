package db

import (
	"strconv"
	"strings"
)

// Rebind rewrites ? placeholders into the dialect's positional form.
// MySQL and SQLite bind ? natively; Postgres expects $1..$n.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
