package profile

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want float64
	}{
		{"empty", models.User{}, 0},
		{"blank strings do not count", models.User{Intro: "   ", Address: "\t"}, 0},
		{"company name", models.User{CompanyName: "Acme"}, 14.29},
		{"full name fallback", models.User{FullName: "Jane Doe"}, 14.29},
		{"three fields", models.User{FullName: "Jane", Intro: "hi", Website: "x.io"}, 42.86},
		{
			"arrays count per element",
			models.User{SocialProfiles: pq.StringArray{"gh", "li"}, Skills: []models.Category{{}, {}, {}}},
			71.43,
		},
		{
			"everything",
			models.User{
				CompanyName: "Acme", Intro: "hi", PhoneNumber: "1", Address: "a", Website: "w",
				SocialProfiles: pq.StringArray{"gh"}, Skills: []models.Category{{}},
			},
			100,
		},
		{
			"clamped",
			models.User{
				CompanyName: "Acme", Intro: "hi", PhoneNumber: "1", Address: "a", Website: "w",
				SocialProfiles: pq.StringArray{"gh", "li", "x"}, Skills: []models.Category{{}, {}},
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completion(tt.user))
		})
	}
}

type memUsers struct {
	users map[uuid.UUID]*models.User
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NewNotFound("User not found")
	}
	return u, nil
}

func (m *memUsers) SetProfileCompletion(_ context.Context, id uuid.UUID, pct float64) error {
	m.users[id].ProfileCompletion = pct
	return nil
}

func TestRecompute(t *testing.T) {
	id := uuid.New()
	store := &memUsers{users: map[uuid.UUID]*models.User{
		id: {ID: id, FullName: "Jane Doe", Intro: "hello"},
	}}
	svc := NewService(store)

	pct, err := svc.Recompute(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 28.57, pct)
	assert.Equal(t, 28.57, store.users[id].ProfileCompletion)

	res := svc.ProfileCompletion(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, res.Status)
}
