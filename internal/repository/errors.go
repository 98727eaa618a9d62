package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the store cares about.
const (
	pgUniqueViolation       = "23505"
	pgUndefinedTable        = "42P01"
	pgUndefinedColumn       = "42703"
	pgInsufficientPrivilege = "42501"
)

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// classifyJoin is classify for queries that also resolve the owner relation.
// A missing relation, missing profile table/column or a permission error on it
// means the join itself is not available.
func classifyJoin(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrUnsupportedRelation) {
		return fmt.Errorf("%w: %v", ErrJoinUnsupported, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable, pgUndefinedColumn, pgInsufficientPrivilege:
			return fmt.Errorf("%w: %s", ErrJoinUnsupported, pgErr.Message)
		}
	}
	return classify(err)
}
