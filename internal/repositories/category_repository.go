package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/categories"
)

const categoryNotFound = "Category not found"

// categoryTreeLock is the pg_advisory_xact_lock key for parent changes.
const categoryTreeLock int64 = 0x63617467

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translate(r.DB.WithContext(ctx).Omit("Parent").Create(c).Error, "create category", categoryNotFound)
}

func (r *CategoryRepository) ParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var c models.Category
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "parent_id").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find category", categoryNotFound)
	}
	return c.ParentID, nil
}

func (r *CategoryRepository) SetParent(ctx context.Context, id uuid.UUID, parent *uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("parent_id", parent)
	if res.Error != nil {
		return translate(res.Error, "move category", categoryNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound(categoryNotFound)
	}
	return nil
}

func (r *CategoryRepository) WithTreeLock(ctx context.Context, fn func(categories.Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", categoryTreeLock).Error; err != nil {
			return apperr.NewInternal("lock category tree", errors.Wrap(err, "lock category tree"))
		}
		return fn(&CategoryRepository{DB: tx})
	})
}

func (r *CategoryRepository) active(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Category{}).Where("active AND NOT is_deleted")
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.active(ctx).Order("title ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "list categories", categoryNotFound)
	}
	return list, nil
}

// MatchIDs runs a full-text match against category titles, backed by the
// GIN index created at migration time. An empty text matches everything.
func (r *CategoryRepository) MatchIDs(ctx context.Context, text string) ([]uuid.UUID, error) {
	q := r.active(ctx)
	if text != "" {
		q = q.Where("to_tsvector('english', title) @@ plainto_tsquery('english', ?)", text)
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, translate(err, "match categories", categoryNotFound)
	}
	return ids, nil
}
