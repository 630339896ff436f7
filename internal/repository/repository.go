package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// DBTX is the subset of sqlx.DB/sqlx.Tx the adapters need, so queries run
// against the transaction carried on the context when one is present.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var _ DBTX = (*sqlx.DB)(nil)
var _ DBTX = (*sqlx.Tx)(nil)

// isUniqueViolation reports whether the error is an Oracle unique-constraint
// violation (ORA-00001). go-ora surfaces the ORA code in the error text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "ORA-00001") ||
		strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
