package categories

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/validation"
)

type Store interface {
	Create(ctx context.Context, c *models.Category) error
	// ParentOf returns the parent id of a category, nil for a root, or a
	// NotFound error.
	ParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	SetParent(ctx context.Context, id uuid.UUID, parent *uuid.UUID) error
	ListActive(ctx context.Context) ([]models.Category, error)
	// WithTreeLock runs fn against a store bound to one transaction that
	// holds the category tree lock. Writers that change parents serialize on it.
	WithTreeLock(ctx context.Context, fn func(Store) error) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateRequest struct {
	Title  string     `json:"title" validate:"required,max=120"`
	Parent *uuid.UUID `json:"parent"`
	Active *bool      `json:"active"`
}

// checkParent walks up from parent and fails if it reaches child, which would
// close a cycle. A category can never be its own parent.
func checkParent(ctx context.Context, store Store, child uuid.UUID, parent *uuid.UUID) error {
	if parent == nil {
		return nil
	}
	seen := map[uuid.UUID]bool{}
	for cur := parent; cur != nil; {
		if *cur == child {
			return apperr.NewValidation("category parent would create a cycle", map[string]string{"parent": "cycle"})
		}
		if seen[*cur] {
			// an existing cycle elsewhere; stop walking
			return nil
		}
		seen[*cur] = true

		next, err := store.ParentOf(ctx, *cur)
		if err != nil {
			if isNotFound(err) && *cur == *parent {
				return apperr.NewValidation("parent category does not exist", map[string]string{"parent": "exists"})
			}
			return err
		}
		cur = next
	}
	return nil
}

func isNotFound(err error) bool {
	e, ok := apperr.As(err)
	return ok && e.Kind == apperr.NotFound
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Category, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.NewValidation("title is required", map[string]string{"title": "required"})
	}
	c := &models.Category{ID: uuid.New(), Title: title, ParentID: req.Parent, Active: true}
	if req.Active != nil {
		c.Active = *req.Active
	}
	err := s.store.WithTreeLock(ctx, func(tx Store) error {
		if err := checkParent(ctx, tx, c.ID, c.ParentID); err != nil {
			return err
		}
		return tx.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Move re-parents an existing category. The ancestor walk and the write
// share one locked transaction, so two crossing moves cannot both pass.
func (s *Service) Move(ctx context.Context, id uuid.UUID, parent *uuid.UUID) error {
	return s.store.WithTreeLock(ctx, func(tx Store) error {
		if _, err := tx.ParentOf(ctx, id); err != nil {
			return err
		}
		if err := checkParent(ctx, tx, id, parent); err != nil {
			return err
		}
		return tx.SetParent(ctx, id, parent)
	})
}

func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	cats, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(cats), nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateRequest) response.Result {
	c, err := s.Create(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Category created", response.Payload{"category": c})
}

func (s *Service) MoveCategory(ctx context.Context, id uuid.UUID, parent *uuid.UUID) response.Result {
	if err := s.Move(ctx, id, parent); err != nil {
		return response.FromError(err)
	}
	return response.OK("Category updated", nil)
}

func (s *Service) GetCategories(ctx context.Context) response.Result {
	tree, err := s.Tree(ctx)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Categories", response.Payload{"categories": tree})
}
