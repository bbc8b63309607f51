// Package store provides database access methods for all HackerThink
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInUse is returned when a delete is blocked because content rows still
// reference the target (guests with interviews, categories with content).
var ErrInUse = errors.New("row is referenced by existing content")

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The unique constraint is the source of truth
// for slug collisions; there is no pre-insert existence check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation (SQLSTATE 23503), raised when a referenced row does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// updateBuilder accumulates SET clauses for a partial UPDATE. Only fields
// the caller supplies are added, with parameter indices assigned
// incrementally. Callers append the WHERE arguments after Args().
type updateBuilder struct {
	sets []string
	args []any
}

// Set adds one column assignment with the next parameter index.
func (b *updateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// SetRaw adds a raw SQL assignment that consumes no parameter.
func (b *updateBuilder) SetRaw(assignment string) {
	b.sets = append(b.sets, assignment)
}

// Empty reports whether no column was set.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Clause returns the comma-joined SET clause body.
func (b *updateBuilder) Clause() string {
	clause := ""
	for i, s := range b.sets {
		if i > 0 {
			clause += ", "
		}
		clause += s
	}
	return clause
}

// Args returns the accumulated parameters in order.
func (b *updateBuilder) Args() []any {
	return b.args
}

// NextIndex returns the parameter index the next value would receive.
// Used for WHERE placeholders appended after the SET clause.
func (b *updateBuilder) NextIndex() int {
	return len(b.args) + 1
}
