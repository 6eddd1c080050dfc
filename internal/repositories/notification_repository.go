package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

const notificationNotFound = "Notification not found"

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.DB.WithContext(ctx).Omit("TriggeredBy").Create(n).Error, "create notification", notificationNotFound)
}

// MarkRead only touches notifications addressed to userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND notify_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error, "read notification", notificationNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound(notificationNotFound)
	}
	return nil
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var list []models.Notification
	err := r.DB.WithContext(ctx).
		Where("notify_id = ? AND NOT is_read", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list notifications", notificationNotFound)
	}
	return list, nil
}
