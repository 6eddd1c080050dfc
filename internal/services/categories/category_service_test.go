package categories

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

type memStore struct {
	mu   sync.Mutex
	cats map[uuid.UUID]*models.Category
}

func (m *memStore) WithTreeLock(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func newMemStore() *memStore {
	return &memStore{cats: map[uuid.UUID]*models.Category{}}
}

func (m *memStore) Create(_ context.Context, c *models.Category) error {
	cp := *c
	m.cats[c.ID] = &cp
	return nil
}

func (m *memStore) ParentOf(_ context.Context, id uuid.UUID) (*uuid.UUID, error) {
	c, ok := m.cats[id]
	if !ok {
		return nil, apperr.NewNotFound("Category not found")
	}
	return c.ParentID, nil
}

func (m *memStore) SetParent(_ context.Context, id uuid.UUID, parent *uuid.UUID) error {
	m.cats[id].ParentID = parent
	return nil
}

func (m *memStore) ListActive(context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.cats {
		if c.Active && !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func TestCreateAndTree(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())

	dev, err := svc.Create(ctx, CreateRequest{Title: "Development"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: "Web", Parent: &dev.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: "Backend", Parent: &dev.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: "Design"})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Design", tree[0].Title)
	assert.Equal(t, "Development", tree[1].Title)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "Backend", tree[1].Children[0].Title)
}

func TestCreateRejectsUnknownParent(t *testing.T) {
	svc := NewService(newMemStore())
	missing := uuid.New()

	_, err := svc.Create(context.Background(), CreateRequest{Title: "Web", Parent: &missing})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := NewService(newMemStore())
	res := svc.CreateCategory(context.Background(), CreateRequest{Title: "  "})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestCreateRejectsLongTitle(t *testing.T) {
	svc := NewService(newMemStore())
	res := svc.CreateCategory(context.Background(), CreateRequest{Title: strings.Repeat("x", 121)})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestConcurrentCrossingMoves(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())

	for i := 0; i < 50; i++ {
		a, err := svc.Create(ctx, CreateRequest{Title: "a"})
		require.NoError(t, err)
		b, err := svc.Create(ctx, CreateRequest{Title: "b"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); errs[0] = svc.Move(ctx, a.ID, &b.ID) }()
		go func() { defer wg.Done(); errs[1] = svc.Move(ctx, b.ID, &a.ID) }()
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())

	a, err := svc.Create(ctx, CreateRequest{Title: "a"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateRequest{Title: "b", Parent: &a.ID})
	require.NoError(t, err)
	c, err := svc.Create(ctx, CreateRequest{Title: "c", Parent: &b.ID})
	require.NoError(t, err)

	t.Run("self", func(t *testing.T) {
		assert.ErrorIs(t, svc.Move(ctx, a.ID, &a.ID), apperr.ErrValidation)
	})
	t.Run("descendant", func(t *testing.T) {
		assert.ErrorIs(t, svc.Move(ctx, a.ID, &c.ID), apperr.ErrValidation)
	})
	t.Run("sideways is fine", func(t *testing.T) {
		d, err := svc.Create(ctx, CreateRequest{Title: "d"})
		require.NoError(t, err)
		assert.NoError(t, svc.Move(ctx, c.ID, &d.ID))
	})
	t.Run("unknown category", func(t *testing.T) {
		res := svc.MoveCategory(ctx, uuid.New(), nil)
		assert.Equal(t, http.StatusNotFound, res.Status)
	})
}

func TestBuildTreeOrphansBecomeRoots(t *testing.T) {
	gone := uuid.New()
	tree := BuildTree([]models.Category{{ID: uuid.New(), Title: "orphan", ParentID: &gone}})
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}
