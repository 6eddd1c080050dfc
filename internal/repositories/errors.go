package repositories

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps gorm errors onto the apperr taxonomy. Anything it does not
// recognise is wrapped with the operation name and treated as internal.
func translate(err error, op, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NewNotFound(notFoundMsg)
	}
	return apperr.NewInternal(op, errors.Wrap(err, op))
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == uniqueViolation || stderrors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == foreignKeyViolation || stderrors.Is(err, gorm.ErrForeignKeyViolated)
}
