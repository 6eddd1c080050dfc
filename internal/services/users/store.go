package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/otp"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

type ListFilter struct {
	Role       models.Role `json:"userType"`
	SkillIDs   []uuid.UUID `json:"skills"`
	IsVerified *bool       `json:"isVerified"`
}

// ProfileChanges holds the profile fields a user may edit. Nil fields are
// left alone.
type ProfileChanges struct {
	FirstName      *string
	LastName       *string
	FullName       *string
	CompanyName    *string
	Occupation     *string
	Intro          *string
	ProfilePic     *string
	PhoneNumber    *string
	Address        *string
	Website        *string
	SocialProfiles *[]string
	SkillIDs       *[]uuid.UUID
}

type Store interface {
	Create(ctx context.Context, u *models.User) error
	// FindConflict returns any user with the given user name, email or
	// non-empty company name, or nil.
	FindConflict(ctx context.Context, userName, email, companyName string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, f ListFilter, page utils.PageInfo) ([]models.User, int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, c ProfileChanges) error
	SetVerified(ctx context.Context, id uuid.UUID) error
	SetPassword(ctx context.Context, id uuid.UUID, hash string) error

	// AddReview inserts the review and bumps the reviewee's aggregates in a
	// single transaction.
	AddReview(ctx context.Context, r *models.Review) error
	Reviews(ctx context.Context, userID uuid.UUID) ([]models.Review, error)
	// AddContact puts each user in the other's contacted set. Repeating it is
	// a no-op.
	AddContact(ctx context.Context, a, b uuid.UUID) error
}

type OTPIssuer interface {
	Issue(ctx context.Context, p otp.Purpose, email string) (string, error)
	Verify(ctx context.Context, p otp.Purpose, email, code string) (bool, error)
}

type ProfileScorer interface {
	Recompute(ctx context.Context, userID uuid.UUID) (float64, error)
}

type Notifier interface {
	Notify(ctx context.Context, triggeredBy, notify uuid.UUID, message string, typ models.NotificationType, meta any)
}
