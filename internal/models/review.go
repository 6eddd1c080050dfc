package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ReviewedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	Title       string `gorm:"type:varchar(200)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Rating      int    `gorm:"not null;check:rating >= 0 AND rating <= 5" json:"rating"` // 0-5

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Reviewer *User `gorm:"foreignKey:ReviewedByID" json:"reviewedBy,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
