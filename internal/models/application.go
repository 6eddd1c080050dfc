package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application is a freelancer's bid on a project.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"projectId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Bid       float64   `gorm:"not null;index" json:"bid"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User    *User    `gorm:"foreignKey:UserID" json:"userId,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
