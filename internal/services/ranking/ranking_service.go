package ranking

import (
	"context"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
)

const (
	DefaultMinBid   = 0
	DefaultMaxBid   = 10000
	DefaultStrategy = "mostReviews"
)

type Filter struct {
	ProjectID uuid.UUID
	MinBid    float64
	MaxBid    float64
}

type ApplicationRepository interface {
	FindByProject(ctx context.Context, filter Filter, order Ordering) ([]models.Application, error)
}

type Service struct {
	repo ApplicationRepository
}

func NewService(repo ApplicationRepository) *Service {
	return &Service{repo: repo}
}

// Rank returns the applications matching filter in the order of the named
// strategy. A filter nothing can satisfy (no project, inverted bid range)
// yields an empty list.
func (s *Service) Rank(ctx context.Context, filter Filter, sortedBy string) ([]models.Application, error) {
	if filter.ProjectID == uuid.Nil || filter.MinBid > filter.MaxBid {
		return []models.Application{}, nil
	}

	apps, err := s.repo.FindByProject(ctx, filter, ParseStrategy(sortedBy).Ordering())
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

func (s *Service) GetApplicationsByProjectID(ctx context.Context, filter Filter, sortedBy string) response.Result {
	apps, err := s.Rank(ctx, filter, sortedBy)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("", response.Payload{"applications": apps})
}
