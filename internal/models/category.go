package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a node of the skill taxonomy. Projects and users reference
// categories as their skill set.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	Title    string     `gorm:"type:varchar(120);not null" json:"title"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent,omitempty"`

	Active    bool `gorm:"default:true" json:"active"`
	IsDeleted bool `gorm:"default:false;index" json:"isDeleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Parent *Category `gorm:"foreignKey:ParentID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// CategoryRefs turns a list of ids into stub categories usable for
// many2many association writes.
func CategoryRefs(ids []uuid.UUID) []Category {
	out := make([]Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, Category{ID: id})
	}
	return out
}
