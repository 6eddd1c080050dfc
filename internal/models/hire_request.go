package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HireRequestStatus string

const (
	HireRequestPending  HireRequestStatus = "pending"
	HireRequestAccepted HireRequestStatus = "accepted"
	HireRequestRejected HireRequestStatus = "rejected"
)

type HireRequest struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	ProjectID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"projectId"`
	ClientID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"clientId"`
	FreelancerID uuid.UUID         `gorm:"type:uuid;not null;index" json:"freelancerId"`
	Status       HireRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (h *HireRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}
