package projects

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

type ListFilter struct {
	OwnerID  *uuid.UUID             `json:"postedBy"`
	Progress models.ProjectProgress `json:"progress"`
	SkillIDs []uuid.UUID            `json:"skills"`
	IsRemote *bool                  `json:"isRemote"`
}

// Changes holds editable project fields; nil means unchanged.
type Changes struct {
	Title            *string
	Description      *string
	BudgetMin        *float64
	BudgetMax        *float64
	Duration         *string
	WorkLocation     *string
	IsRemote         *bool
	FreelancersCount *int
	Education        *[]string
	Visibility       *[]string
	SkillIDs         *[]uuid.UUID
}

type Store interface {
	Create(ctx context.Context, p *models.Project) error
	// FindByID skips soft-deleted projects.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, f ListFilter, page utils.PageInfo) ([]models.Project, int64, error)
	Update(ctx context.Context, id uuid.UUID, c Changes) error
	// SoftDelete marks a project of owner as deleted. NotFound when the
	// project is missing or owned by someone else.
	SoftDelete(ctx context.Context, id, owner uuid.UUID) error
	// ValidForHire lists client's live projects freelancer is not hired on.
	ValidForHire(ctx context.Context, clientID, freelancerID uuid.UUID) ([]models.Project, error)
	IsHired(ctx context.Context, projectID, freelancerID uuid.UUID) (bool, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a *models.Application) error
}

type HireStore interface {
	Create(ctx context.Context, h *models.HireRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.HireRequest, error)
	FindPending(ctx context.Context, projectID, freelancerID uuid.UUID) (*models.HireRequest, error)
	Reject(ctx context.Context, id uuid.UUID) error
	// Accept marks the request accepted, adds the freelancer to the hired
	// list and moves the project to working, all in one transaction.
	Accept(ctx context.Context, h *models.HireRequest) error
}

type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, triggeredBy, notify uuid.UUID, message string, typ models.NotificationType, meta any)
}
