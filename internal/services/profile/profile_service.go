package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
)

type UserStore interface {
	// FindByID loads the user with skills, or returns a NotFound error.
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetProfileCompletion(ctx context.Context, id uuid.UUID, pct float64) error
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Recompute scores the stored profile, writes the percentage back and
// returns it.
func (s *Service) Recompute(ctx context.Context, userID uuid.UUID) (float64, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	pct := Completion(*u)
	if err := s.users.SetProfileCompletion(ctx, userID, pct); err != nil {
		return 0, err
	}
	slog.Debug("profile completion updated", "user", userID, "pct", pct)
	return pct, nil
}

func (s *Service) ProfileCompletion(ctx context.Context, userID uuid.UUID) response.Result {
	pct, err := s.Recompute(ctx, userID)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Profile completion updated", response.Payload{"profileCompletion": pct})
}
