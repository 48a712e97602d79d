package helper

import (
	"regexp"

	"wholesaler/wholesaler_catalog_service/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Constraint names in the migrations follow FK_/CHK_ prefixes; the fallback
// classifier parses them out of the raw message when no SQLSTATE is present.
var (
	fkConstraintPattern  = regexp.MustCompile(`(FK_[A-Za-z0-9_]+)`)
	chkConstraintPattern = regexp.MustCompile(`(CHK_[A-Za-z0-9_]+)`)
)

// ClassifyDBError maps a low-level database error onto a typed StoreError.
// The SQLSTATE code is authoritative; the constraint-name prefix match is
// only a fallback for errors that arrive without one, and anything else is
// reported as Unknown with the original message preserved.
func ClassifyDBError(err error, message string) *models.StoreError {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewStoreError(models.ErrNotFound, message+": not found", "", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			// Foreign key violation
			return models.NewStoreError(models.ErrForeignKeyViolation,
				message+": "+pgErr.Message, pgErr.ConstraintName, err)
		case "23514":
			// Check constraint violation
			return models.NewStoreError(models.ErrCheckViolation,
				message+": "+pgErr.Message, pgErr.ConstraintName, err)
		}

		if pgErr.Code == "" {
			if kind, constraint, ok := classifyByConstraintName(pgErr.Message); ok {
				return models.NewStoreError(kind, message+": "+pgErr.Message, constraint, err)
			}
		}

		return models.NewStoreError(models.ErrUnknown,
			message+": "+pgErr.Message, pgErr.ConstraintName, err)
	}

	if kind, constraint, ok := classifyByConstraintName(err.Error()); ok {
		return models.NewStoreError(kind, message+": "+err.Error(), constraint, err)
	}

	return models.NewStoreError(models.ErrUnknown, message+": "+err.Error(), "", err)
}

// classifyByConstraintName disambiguates FK vs CHECK violations by the
// naming convention of the offending constraint. When neither prefix
// matches, the caller must fall back to Unknown rather than guess.
func classifyByConstraintName(raw string) (models.StoreErrorKind, string, bool) {
	if m := fkConstraintPattern.FindString(raw); m != "" {
		return models.ErrForeignKeyViolation, m, true
	}
	if m := chkConstraintPattern.FindString(raw); m != "" {
		return models.ErrCheckViolation, m, true
	}
	return "", "", false
}
