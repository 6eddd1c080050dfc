package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/categories"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/ranking"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/search"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

func bids(apps []models.Application) []float64 {
	out := make([]float64, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.Bid)
	}
	return out
}

func TestApplicationOrdering(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(gdb)

	owner := seedUser(t, gdb, func(u *models.User) { u.Role = models.RoleClient })
	project := seedProject(t, gdb, owner.ID)

	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
	applicants := []struct {
		bid     float64
		reviews int
		rating  float64
	}{
		{100, 5, 4.5},
		{300, 2, 3.0},
		{200, 5, 1.5},
		{400, 0, 0},
	}
	for i, a := range applicants {
		u := seedUser(t, gdb, func(u *models.User) {
			u.ReviewCount = a.reviews
			u.AverageRating = a.rating
		})
		app := &models.Application{
			ProjectID: project.ID,
			UserID:    u.ID,
			Bid:       a.bid,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, app))
	}

	all := ranking.Filter{ProjectID: project.ID, MinBid: ranking.DefaultMinBid, MaxBid: ranking.DefaultMaxBid}
	find := func(f ranking.Filter, strategy string) []models.Application {
		apps, err := repo.FindByProject(ctx, f, ranking.ParseStrategy(strategy).Ordering())
		require.NoError(t, err)
		return apps
	}

	t.Run("highest hourly rate reverses lowest", func(t *testing.T) {
		low := bids(find(all, "lowestHourlyRate"))
		high := bids(find(all, "highestHourlyRate"))
		assert.Equal(t, []float64{100, 200, 300, 400}, low)
		for i := range low {
			assert.Equal(t, low[i], high[len(high)-1-i])
		}
	})

	t.Run("ties fall back to creation time", func(t *testing.T) {
		// bids 100 and 200 both have five reviews; 100 applied first
		assert.Equal(t, []float64{100, 200, 300, 400}, bids(find(all, "mostReviews")))
		assert.Equal(t, []float64{400, 300, 100, 200}, bids(find(all, "leastReviews")))
	})

	t.Run("unknown strategy is oldest first", func(t *testing.T) {
		assert.Equal(t, []float64{100, 300, 200, 400}, bids(find(all, "nope")))
	})

	t.Run("rating", func(t *testing.T) {
		assert.Equal(t, []float64{100, 300, 200, 400}, bids(find(all, "highestAverageRating")))
		apps := find(all, "lowestAverageRating")
		require.NotNil(t, apps[0].User)
		assert.Equal(t, 0.0, apps[0].User.AverageRating)
	})

	t.Run("bid window", func(t *testing.T) {
		f := all
		f.MinBid, f.MaxBid = 150, 350
		assert.Equal(t, []float64{200, 300}, bids(find(f, "lowestHourlyRate")))
	})
}

func TestAddReviewConcurrent(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()
	repo := NewUserRepository(gdb)

	target := seedUser(t, gdb, nil)
	reviewer := seedUser(t, gdb, func(u *models.User) { u.Role = models.RoleClient })

	const n = 20
	sum := 0
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		rating := i % (models.MaxRating + 1)
		sum += rating
		wg.Add(1)
		go func(i, rating int) {
			defer wg.Done()
			errs[i] = repo.AddReview(ctx, &models.Review{
				UserID:       target.ID,
				ReviewedByID: reviewer.ID,
				Title:        "review",
				Rating:       rating,
			})
		}(i, rating)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	u, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, n, u.ReviewCount)
	assert.Equal(t, sum, u.RatingSum)
	assert.InDelta(t, float64(sum)/n, u.AverageRating, 1e-9)

	reviews, err := repo.Reviews(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, n)
}

func TestAddReviewUnknownUser(t *testing.T) {
	gdb := testDB(t)
	reviewer := seedUser(t, gdb, nil)

	err := NewUserRepository(gdb).AddReview(context.Background(), &models.Review{
		UserID:       uuid.New(),
		ReviewedByID: reviewer.ID,
		Rating:       3,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearchSkipsDeletedProjects(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(gdb)

	owner := seedUser(t, gdb, func(u *models.User) { u.Role = models.RoleClient })
	golang := seedCategory(t, gdb, "Golang")
	design := seedCategory(t, gdb, "Logo Design")

	live := seedProject(t, gdb, owner.ID, *golang)
	deleted := seedProject(t, gdb, owner.ID, *golang, *design)
	other := seedProject(t, gdb, owner.ID, *design)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID, owner.ID))

	got, total, err := repo.Search(ctx, search.Query{SkillIDs: []uuid.UUID{golang.ID}}, utils.NewPageInfo(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)
	require.NotNil(t, got[0].Owner)
	assert.Equal(t, owner.ID, got[0].Owner.ID)

	got, total, err = repo.Search(ctx, search.Query{SkillIDs: []uuid.UUID{golang.ID, design.ID}}, utils.NewPageInfo(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := []uuid.UUID{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{live.ID, other.ID}, ids)

	t.Run("deleted project is not found by id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, deleted.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("budget filter", func(t *testing.T) {
		over := 1000.0
		got, total, err := repo.Search(ctx, search.Query{SkillIDs: []uuid.UUID{golang.ID}, BudgetMin: &over}, utils.NewPageInfo(1, 10))
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, got)
	})
}

func TestCategoryMatchIDs(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(gdb)

	mobile := seedCategory(t, gdb, "Mobile Development")
	graphics := seedCategory(t, gdb, "Graphic Illustration")
	hidden := seedCategory(t, gdb, "Game Development")
	require.NoError(t, gdb.Model(&models.Category{}).Where("id = ?", hidden.ID).Update("active", false).Error)

	ids, err := repo.MatchIDs(ctx, "developers")
	require.NoError(t, err)
	assert.Contains(t, ids, mobile.ID)
	assert.NotContains(t, ids, graphics.ID)
	assert.NotContains(t, ids, hidden.ID)

	ids, err = repo.MatchIDs(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, ids, mobile.ID)
	assert.Contains(t, ids, graphics.ID)
	assert.NotContains(t, ids, hidden.ID)
}

func TestCategoryCrossingMoves(t *testing.T) {
	gdb := testDB(t)
	ctx := context.Background()
	svc := categories.NewService(NewCategoryRepository(gdb))

	for i := 0; i < 10; i++ {
		a, err := svc.Create(ctx, categories.CreateRequest{Title: "a"})
		require.NoError(t, err)
		b, err := svc.Create(ctx, categories.CreateRequest{Title: "b"})
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
