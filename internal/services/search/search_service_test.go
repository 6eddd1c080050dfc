package search

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

type memCategories struct {
	cats  []models.Category
	texts []string
	err   error
}

func (m *memCategories) MatchIDs(_ context.Context, text string) ([]uuid.UUID, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	var out []uuid.UUID
	for _, c := range m.cats {
		if text == "" || strings.Contains(strings.ToLower(c.Title), strings.ToLower(text)) {
			out = append(out, c.ID)
		}
	}
	return out, nil
}

type memProjects struct {
	projects []models.Project
	err      error
}

func (m *memProjects) Search(_ context.Context, q Query, page utils.PageInfo) ([]models.Project, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	want := map[uuid.UUID]bool{}
	for _, id := range q.SkillIDs {
		want[id] = true
	}
	var hits []models.Project
	for _, p := range m.projects {
		if p.IsDeleted {
			continue
		}
		if q.IsRemote != nil && p.IsRemote != *q.IsRemote {
			continue
		}
		for _, s := range p.Skills {
			if want[s.ID] {
				hits = append(hits, p)
				break
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	return utils.PageSlice(hits, page), int64(len(hits)), nil
}

type world struct {
	svc        *Service
	categories *memCategories
	projects   *memProjects
	golang     models.Category
	design     models.Category
}

func newWorld() world {
	golang := models.Category{ID: uuid.New(), Title: "Golang"}
	design := models.Category{ID: uuid.New(), Title: "Graphic Design"}
	owner := &models.User{ID: uuid.New(), UserName: "acme", FullName: "Acme Inc"}
	now := time.Now()

	projects := &memProjects{projects: []models.Project{
		{ID: uuid.New(), Title: "api", Skills: []models.Category{golang}, Owner: owner, CreatedAt: now},
		{ID: uuid.New(), Title: "logo", Skills: []models.Category{design}, Owner: owner, CreatedAt: now.Add(time.Minute), IsRemote: true},
		{ID: uuid.New(), Title: "gone", Skills: []models.Category{golang}, Owner: owner, CreatedAt: now, IsDeleted: true},
		{ID: uuid.New(), Title: "cli", Skills: []models.Category{golang, design}, Owner: owner, CreatedAt: now.Add(2 * time.Minute)},
	}}
	categories := &memCategories{cats: []models.Category{golang, design}}
	return world{
		svc:        NewService(categories, projects),
		categories: categories,
		projects:   projects,
		golang:     golang,
		design:     design,
	}
}

func titles(ps []ProjectSummary) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestFindByText(t *testing.T) {
	w := newWorld()
	got, total, err := w.svc.Find(context.Background(), Request{SearchString: "golang"}, utils.NewPageInfo(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"cli", "api"}, titles(got))
	require.NotNil(t, got[0].PostedBy)
	assert.Equal(t, "acme", got[0].PostedBy.UserName)
	assert.Len(t, got[0].Skills, 2)
}

func TestShortQueryMatchesEverything(t *testing.T) {
	w := newWorld()
	page := utils.NewPageInfo(1, 10)

	short, _, err := w.svc.Find(context.Background(), Request{SearchString: "go"}, page)
	require.NoError(t, err)
	empty, _, err := w.svc.Find(context.Background(), Request{}, page)
	require.NoError(t, err)

	assert.Equal(t, titles(empty), titles(short))
	assert.Len(t, short, 3)
	assert.Equal(t, []string{"", ""}, w.categories.texts)
}

func TestFindFilters(t *testing.T) {
	w := newWorld()
	remote := true
	got, _, err := w.svc.Find(context.Background(), Request{IsRemote: &remote}, utils.NewPageInfo(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"logo"}, titles(got))

	got, _, err = w.svc.Find(context.Background(), Request{Skills: []uuid.UUID{w.design.ID}}, utils.NewPageInfo(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "logo"}, titles(got))
}

func TestSearchPaging(t *testing.T) {
	w := newWorld()
	res := w.svc.Search(context.Background(), Request{}, utils.NewPageInfo(2, 2))
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 2, res.Get("page"))
	assert.Equal(t, int64(3), res.Get("totalProjects"))
	assert.Equal(t, 2, res.Get("totalProjectPages"))
	assert.Equal(t, []string{"api"}, titles(res.Get("projects").([]ProjectSummary)))
}

func TestSearchNoResults(t *testing.T) {
	w := newWorld()
	res := w.svc.Search(context.Background(), Request{SearchString: "cobol"}, utils.NewPageInfo(1, 10))
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "no results", res.Message)
	assert.Equal(t, 1, res.Get("totalProjectPages"))
	assert.Empty(t, res.Get("projects"))
}

func TestSearchPersistenceFailure(t *testing.T) {
	w := newWorld()
	w.projects.err = errors.New("pq: canceling statement due to statement timeout")

	res := w.svc.Search(context.Background(), Request{SearchString: "golang"}, utils.NewPageInfo(1, 10))
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Internal Server Error", res.Message)
	assert.Nil(t, res.Get("projects"))
}
