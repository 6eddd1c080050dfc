package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/ranking"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// orderColumns is the only place a sort column reaches SQL.
var orderColumns = map[ranking.Column]string{
	ranking.ColumnCreatedAt:     "applications.created_at",
	ranking.ColumnBid:           "applications.bid",
	ranking.ColumnReviewCount:   "users.review_count",
	ranking.ColumnAverageRating: "users.average_rating",
}

func (r *ApplicationRepository) FindByProject(ctx context.Context, f ranking.Filter, order ranking.Ordering) ([]models.Application, error) {
	col, ok := orderColumns[order.Column]
	if !ok {
		col = orderColumns[ranking.ColumnCreatedAt]
	}

	var apps []models.Application
	err := r.DB.WithContext(ctx).
		Select("applications.*").
		Joins("JOIN users ON users.id = applications.user_id").
		Where("applications.project_id = ? AND applications.bid BETWEEN ? AND ?", f.ProjectID, f.MinBid, f.MaxBid).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: order.Desc}).
		Order("applications.created_at ASC").
		Preload("User").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.NewInternal("list applications", errors.Wrap(err, "list applications"))
	}
	return apps, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.DB.WithContext(ctx).Create(app).Error; err != nil {
		return translate(err, "create application", "Project not found")
	}
	return nil
}
