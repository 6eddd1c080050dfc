package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProjectProgress string

const (
	ProgressPosted  ProjectProgress = "posted"
	ProgressWorking ProjectProgress = "working"
	ProgressDone    ProjectProgress = "done"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"projectTitle"`
	Description string    `gorm:"type:text" json:"description"`

	BudgetMin float64 `gorm:"not null;default:0" json:"budgetMin"`
	BudgetMax float64 `gorm:"not null;default:0" json:"budgetMax"`
	Duration  string  `gorm:"type:varchar(60)" json:"duration"`

	WorkLocation     string         `json:"workLocation"`
	IsRemote         bool           `gorm:"default:false" json:"isRemote"`
	FreelancersCount int            `gorm:"default:1" json:"freelancersCount"`
	Education        pq.StringArray `gorm:"type:text[]" json:"education"`
	Visibility       pq.StringArray `gorm:"type:text[]" json:"visibility"`

	OwnerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"ownerId"`
	Progress ProjectProgress `gorm:"type:varchar(20);not null;default:'posted'" json:"progress"`

	// soft-deleted projects never show up in listings or search
	IsDeleted bool `gorm:"default:false;index" json:"isDeleted"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner        *User         `gorm:"foreignKey:OwnerID" json:"postedBy,omitempty"`
	Skills       []Category    `gorm:"many2many:project_skills;" json:"skills,omitempty"`
	Hired        []User        `gorm:"many2many:project_hires;" json:"hired,omitempty"`
	Applications []Application `gorm:"foreignKey:ProjectID" json:"appliedBy,omitempty"`
	HireRequests []HireRequest `gorm:"foreignKey:ProjectID" json:"hireRequests,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p Project) SkillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Skills))
	for _, s := range p.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}
