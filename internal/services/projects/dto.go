package projects

import "github.com/google/uuid"

type CreateRequest struct {
	Title            string      `json:"projectTitle" validate:"required,max=200"`
	Description      string      `json:"description"`
	Skills           []uuid.UUID `json:"skills"`
	Education        []string    `json:"education"`
	Visibility       []string    `json:"visibility"`
	WorkLocation     string      `json:"workLocation"`
	IsRemote         bool        `json:"isRemote"`
	FreelancersCount int         `json:"freelancersCount" validate:"omitempty,min=1"`
	PostedBy         uuid.UUID   `json:"postedBy" validate:"required"`
	BudgetMin        float64     `json:"budgetMin" validate:"min=0"`
	BudgetMax        float64     `json:"budgetMax" validate:"min=0,gtefield=BudgetMin"`
	Duration         string      `json:"duration" validate:"max=60"`
}

type EditRequest struct {
	ProjectID uuid.UUID `json:"projectId" validate:"required"`
	// EditorID is the authenticated user; uuid.Nil skips the owner check.
	EditorID  uuid.UUID `json:"-"`

	Title            *string      `json:"projectTitle" validate:"omitempty,min=1,max=200"`
	Description      *string      `json:"description"`
	Skills           *[]uuid.UUID `json:"skills"`
	Education        *[]string    `json:"education"`
	Visibility       *[]string    `json:"visibility"`
	WorkLocation     *string      `json:"workLocation"`
	IsRemote         *bool        `json:"isRemote"`
	FreelancersCount *int         `json:"freelancersCount" validate:"omitempty,min=1"`
	BudgetMin        *float64     `json:"budgetMin" validate:"omitempty,min=0"`
	BudgetMax        *float64     `json:"budgetMax" validate:"omitempty,min=0"`
	Duration         *string      `json:"duration" validate:"omitempty,max=60"`
}

type ApplyRequest struct {
	ProjectID uuid.UUID `json:"projectId" validate:"required"`
	UserID    uuid.UUID `json:"userId" validate:"required"`
	Bid       float64   `json:"bid" validate:"min=0"`
}

type HireRequestInput struct {
	ProjectID    uuid.UUID `json:"projectId" validate:"required"`
	ClientID     uuid.UUID `json:"clientId" validate:"required"`
	FreelancerID uuid.UUID `json:"freelancerId" validate:"required"`
}

type RespondRequest struct {
	HireRequestID uuid.UUID `json:"hireRequestId" validate:"required"`
	FreelancerID  uuid.UUID `json:"freelancerId" validate:"required"`
	Accept        bool      `json:"accept"`
}
