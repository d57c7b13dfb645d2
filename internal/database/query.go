package database

import "strings"

// QueryBuilder rewrites queries written with ? placeholders into the
// active dialect's marker style, so every query in this package is
// written once.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder wraps a dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build renumbers ? markers for the dialect. SQLite queries pass
// through untouched; postgres gets $1, $2, ...
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*sqliteDialect); ok {
		return query
	}

	var out strings.Builder
	out.Grow(len(query) + 8)
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			out.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		out.WriteByte(query[i])
	}
	return out.String()
}

// BuildWithReturning is Build plus a RETURNING clause on dialects that
// cannot report the last inserted ID.
func (qb *QueryBuilder) BuildWithReturning(query, column string) string {
	rebound := qb.Build(query)
	if qb.dialect.SupportsLastInsertID() {
		return rebound
	}
	return rebound + qb.dialect.ReturningClause(column)
}
