package models

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"

	"clubapi/apperr"
)

// withTx runs fn inside one transaction, rolling back on error or panic.
// Every multi-statement sequence in this package goes through it so a
// failure mid-sequence cannot leave partial state behind.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return normalize(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return normalize(err)
	}
	if err := tx.Commit(); err != nil {
		return normalize(err)
	}
	return nil
}

// normalize maps driver errors to the outcome taxonomy. Tagged outcomes pass
// through; anything unexpected is logged and masked as internal.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Not found.")
	}
	var pqe *pq.Error
	if errors.As(err, &pqe) {
		switch pqe.Code {
		case "23505": // unique_violation
			return apperr.Conflict("Already exists.")
		case "23503": // foreign_key_violation
			return apperr.Conflict("Referenced by other records.")
		}
	}
	slog.Error("database error", "error", err)
	return apperr.Internal(err)
}

func isUniqueViolation(err error) bool {
	var pqe *pq.Error
	return errors.As(err, &pqe) && pqe.Code == "23505"
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func rowExists(q execer, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRow(query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func countRows(q execer, query string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
