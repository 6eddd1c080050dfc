package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleCompany    Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleFreelancer || r == RoleCompany
}

// User is an account of any role. Review aggregates are updated in place.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"_id"`
	UserName    string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"userName"`
	Email       string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	FirstName   string    `gorm:"type:varchar(80)" json:"firstName"`
	LastName    string    `gorm:"type:varchar(80)" json:"lastName"`
	FullName    string    `gorm:"type:varchar(170)" json:"fullName"`
	CompanyName string    `gorm:"type:varchar(150)" json:"companyName"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"userType"`

	Occupation     string         `json:"occupation"`
	Intro          string         `gorm:"type:text" json:"intro"`
	ProfilePic     string         `gorm:"type:text" json:"profilePic"`
	PhoneNumber    string         `gorm:"type:varchar(30)" json:"phoneNumber"`
	Address        string         `gorm:"type:text" json:"address"`
	Website        string         `json:"website"`
	SocialProfiles pq.StringArray `gorm:"type:text[]" json:"socialProfiles"`

	IsVerified bool `gorm:"default:false" json:"isVerified"`
	IsActive   bool `gorm:"default:true" json:"isActive"`

	// review aggregates, written in the same statement as every review insert
	ReviewCount   int     `gorm:"not null;default:0;index" json:"reviewCount"`
	RatingSum     int     `gorm:"not null;default:0" json:"-"`
	AverageRating float64 `gorm:"not null;default:0;index" json:"averageRating"`

	ProfileCompletion float64 `gorm:"not null;default:0" json:"profileCompletion"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Skills    []Category `gorm:"many2many:user_skills;" json:"skills,omitempty"`
	Contacted []*User    `gorm:"many2many:user_contacts;" json:"contacted,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// SkillIDs returns the ids of the preloaded skills.
func (u User) SkillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.Skills))
	for _, s := range u.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}
