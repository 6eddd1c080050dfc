package repositories

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/db"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

var (
	pgOnce      sync.Once
	pgDB        *gorm.DB
	pgErr       error
	pgTerminate func()
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgTerminate != nil {
		pgTerminate()
	}
	os.Exit(code)
}

// initDatabaseContainer starts one postgres for the whole package and runs
// the migrations against it.
func initDatabaseContainer() (*gorm.DB, func(), error) {
	ctx := context.Background()

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("freelance"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			slog.Warn("failed to terminate container", "err", err)
		}
	}
	if err != nil {
		return nil, terminate, err
	}

	dsn, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, terminate, err
	}
	gdb, err := db.Connect(dsn)
	if err != nil {
		return nil, terminate, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, terminate, err
	}
	return gdb, terminate, nil
}

// testDB skips when docker is unavailable or -short is set.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		pgDB, pgTerminate, pgErr = initDatabaseContainer()
	})
	require.NoError(t, pgErr)
	return pgDB
}

func seedUser(t *testing.T, gdb *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()
	id := uuid.New()
	u := &models.User{
		ID:       id,
		UserName: "u-" + id.String(),
		Email:    id.String() + "@example.com",
		Password: "x",
		Role:     models.RoleFreelancer,
	}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedCategory(t *testing.T, gdb *gorm.DB, title string) *models.Category {
	t.Helper()
	c := &models.Category{ID: uuid.New(), Title: title, Active: true}
	require.NoError(t, NewCategoryRepository(gdb).Create(context.Background(), c))
	return c
}

func seedProject(t *testing.T, gdb *gorm.DB, owner uuid.UUID, skills ...models.Category) *models.Project {
	t.Helper()
	p := &models.Project{ID: uuid.New(), Title: "project", OwnerID: owner, BudgetMin: 10, BudgetMax: 100, Skills: skills}
	require.NoError(t, NewProjectRepository(gdb).Create(context.Background(), p))
	return p
}
