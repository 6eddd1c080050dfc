package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/ranking"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op", "gone"))

	err := translate(fmt.Errorf("first: %w", gorm.ErrRecordNotFound), "find user", "User not found")
	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.NotFound, e.Kind)
	assert.Equal(t, "User not found", e.Message)

	err = translate(errors.New("connection reset by peer"), "find user", "User not found")
	e, ok = apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.Internal, e.Kind)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestPgCodes(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(errors.New("x")))
}

func TestEveryStrategyHasAColumn(t *testing.T) {
	for s := ranking.Oldest; s <= ranking.LowestAverageRating; s++ {
		_, ok := orderColumns[s.Ordering().Column]
		assert.True(t, ok, s.String())
	}
}
