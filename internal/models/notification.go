package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationReview      NotificationType = "review"
	NotificationHireRequest NotificationType = "hireRequest"
	NotificationHired       NotificationType = "hired"
	NotificationApplication NotificationType = "application"
)

type Notification struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	TriggeredByID uuid.UUID        `gorm:"type:uuid;index" json:"triggeredBy"`
	NotifyID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"notify"`
	Message       string           `gorm:"type:text" json:"notificationMessage"`
	Type          NotificationType `gorm:"type:varchar(30);not null" json:"notificationType"`
	IsRead        bool             `gorm:"default:false;index" json:"isRead"`

	// extra payload for the client, e.g. the review or project it points at
	Meta datatypes.JSON `json:"meta,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TriggeredBy *User `gorm:"foreignKey:TriggeredByID" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
