package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
)

// replaceLinks rewrites the rows of a many2many join table owned by owner.
// Unknown target ids fail with ValidationFailed instead of creating stubs.
func replaceLinks(tx *gorm.DB, table, ownerCol, targetCol string, owner uuid.UUID, targets []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerCol+" = ?", owner).Error; err != nil {
		return translate(err, "clear "+table, "not found")
	}
	if len(targets) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, map[string]any{ownerCol: owner, targetCol: t})
	}
	err := tx.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
	if isForeignKeyViolation(err) {
		return apperr.NewValidation("Unknown skill", map[string]string{"skills": "exists"})
	}
	return translate(err, "link "+table, "not found")
}
