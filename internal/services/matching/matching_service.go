package matching

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

type ProjectReader interface {
	// FindByID returns the project with its skills, or a NotFound error.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// FindByOwner returns the owner's non-deleted projects with skills, oldest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
}

type CandidateFinder interface {
	// FindBySkills returns users, other than exclude, having any of skillIDs,
	// with their skills preloaded.
	FindBySkills(ctx context.Context, skillIDs []uuid.UUID, exclude uuid.UUID) ([]models.User, error)
}

type Service struct {
	projects ProjectReader
	users    CandidateFinder
}

func NewService(projects ProjectReader, users CandidateFinder) *Service {
	return &Service{projects: projects, users: users}
}

// Candidates runs the matching engine for one project.
func (s *Service) Candidates(ctx context.Context, projectID uuid.UUID) ([]Candidate, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, *p)
}

func (s *Service) rank(ctx context.Context, p models.Project) ([]Candidate, error) {
	skills := p.SkillIDs()
	if len(skills) == 0 {
		return []Candidate{}, nil
	}
	users, err := s.users.FindBySkills(ctx, skills, p.OwnerID)
	if err != nil {
		return nil, err
	}
	return Rank(p, users), nil
}

// Feed concatenates the candidates of every project the company owns, in
// project order, and returns one page of the result. Projects are matched
// concurrently; any failure fails the whole feed.
func (s *Service) Feed(ctx context.Context, companyID uuid.UUID, page utils.PageInfo) ([]Candidate, int, error) {
	projects, err := s.projects.FindByOwner(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	if len(projects) == 0 {
		return nil, 0, apperr.NewNotFound("No projects found for this company")
	}

	perProject := make([][]Candidate, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	for i := range projects {
		g.Go(func() error {
			c, err := s.rank(gctx, projects[i])
			if err != nil {
				return err
			}
			perProject[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var all []Candidate
	for _, c := range perProject {
		all = append(all, c...)
	}
	return utils.PageSlice(all, page), len(all), nil
}

func (s *Service) GetProjectMatches(ctx context.Context, projectID uuid.UUID) response.Result {
	c, err := s.Candidates(ctx, projectID)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Matches", response.Payload{"matches": c, "total": len(c)})
}

func (s *Service) GetCompaniesInFeed(ctx context.Context, companyID uuid.UUID, page utils.PageInfo) response.Result {
	c, total, err := s.Feed(ctx, companyID, page)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Feed", response.Payload{
		"feed":       c,
		"page":       page.Page,
		"size":       page.Size,
		"total":      total,
		"totalPages": page.TotalPages(int64(total)),
	})
}
