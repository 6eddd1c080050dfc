package search

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

// MinQueryLength is the shortest query that is matched against category
// titles. Shorter queries match every category.
const MinQueryLength = 3

type Request struct {
	SearchString string      `json:"searchString"`
	Skills       []uuid.UUID `json:"skills"`
	BudgetMin    *float64    `json:"budgetMin"`
	BudgetMax    *float64    `json:"budgetMax"`
	Duration     string      `json:"duration"`
	Location     string      `json:"location"`
	IsRemote     *bool       `json:"isRemote"`
}

// Query is what the project store filters on. SkillIDs is always applied,
// the remaining fields only when set.
type Query struct {
	SkillIDs  []uuid.UUID
	BudgetMin *float64
	BudgetMax *float64
	Duration  string
	Location  string
	IsRemote  *bool
}

type CategoryMatcher interface {
	// MatchIDs returns active categories whose title matches text, or all of
	// them when text is empty.
	MatchIDs(ctx context.Context, text string) ([]uuid.UUID, error)
}

type ProjectSearcher interface {
	// Search returns one page of non-deleted projects, newest first, with
	// owner and skills loaded, plus the total count for the same filter.
	Search(ctx context.Context, q Query, page utils.PageInfo) ([]models.Project, int64, error)
}

type SkillSummary struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
}

type OwnerSummary struct {
	ID         uuid.UUID `json:"_id"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	FullName   string    `json:"fullName"`
	ProfilePic string    `json:"profilePic"`
}

type ProjectSummary struct {
	ID          uuid.UUID      `json:"_id"`
	Title       string         `json:"projectTitle"`
	Description string         `json:"description"`
	BudgetMin   float64        `json:"budgetMin"`
	BudgetMax   float64        `json:"budgetMax"`
	Duration    string         `json:"duration"`
	CreatedAt   time.Time      `json:"createdAt"`
	Skills      []SkillSummary `json:"skills"`
	PostedBy    *OwnerSummary  `json:"postedBy"`
}

func summarize(p models.Project) ProjectSummary {
	out := ProjectSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		BudgetMin:   p.BudgetMin,
		BudgetMax:   p.BudgetMax,
		Duration:    p.Duration,
		CreatedAt:   p.CreatedAt,
		Skills:      make([]SkillSummary, 0, len(p.Skills)),
	}
	for _, s := range p.Skills {
		out.Skills = append(out.Skills, SkillSummary{ID: s.ID, Title: s.Title})
	}
	if o := p.Owner; o != nil {
		out.PostedBy = &OwnerSummary{
			ID:         o.ID,
			UserName:   o.UserName,
			Email:      o.Email,
			FirstName:  o.FirstName,
			LastName:   o.LastName,
			FullName:   o.FullName,
			ProfilePic: o.ProfilePic,
		}
	}
	return out
}

type Service struct {
	categories CategoryMatcher
	projects   ProjectSearcher
}

func NewService(categories CategoryMatcher, projects ProjectSearcher) *Service {
	return &Service{categories: categories, projects: projects}
}

// textFilter drops queries too short to be worth matching.
func textFilter(s string) string {
	if utf8.RuneCountInString(s) < MinQueryLength {
		return ""
	}
	return s
}

// Find resolves the text against the category index, narrows by any explicit
// skills, and returns one page of projects using those skills.
func (s *Service) Find(ctx context.Context, req Request, page utils.PageInfo) ([]ProjectSummary, int64, error) {
	ids, err := s.categories.MatchIDs(ctx, textFilter(req.SearchString))
	if err != nil {
		return nil, 0, err
	}
	if len(req.Skills) > 0 {
		ids = intersect(ids, req.Skills)
	}
	if len(ids) == 0 {
		return []ProjectSummary{}, 0, nil
	}

	projects, total, err := s.projects.Search(ctx, Query{
		SkillIDs:  ids,
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Duration:  req.Duration,
		Location:  req.Location,
		IsRemote:  req.IsRemote,
	}, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summarize(p))
	}
	return out, total, nil
}

func intersect(a, b []uuid.UUID) []uuid.UUID {
	keep := make(map[uuid.UUID]bool, len(b))
	for _, id := range b {
		keep[id] = true
	}
	var out []uuid.UUID
	for _, id := range a {
		if keep[id] {
			out = append(out, id)
		}
	}
	return out
}

func (s *Service) Search(ctx context.Context, req Request, page utils.PageInfo) response.Result {
	projects, total, err := s.Find(ctx, req, page)
	if err != nil {
		return response.FromError(err)
	}

	msg := "search done"
	if len(projects) == 0 {
		msg = "no results"
	}
	return response.OK(msg, response.Payload{
		"projects":          projects,
		"page":              page.Page,
		"totalProjects":     total,
		"totalProjectPages": page.TotalPages(total),
	})
}
