package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

func skills(ids ...uuid.UUID) []models.Category {
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Category{ID: id, Title: id.String()[:4]})
	}
	return out
}

func TestScore(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		project []uuid.UUID
		user    []uuid.UUID
		score   int
		pct     float64
	}{
		{"two of three", []uuid.UUID{a, b, c}, []uuid.UUID{a, c}, 2, 66.67},
		{"all", []uuid.UUID{a, b}, []uuid.UUID{b, a, d}, 2, 100},
		{"none", []uuid.UUID{a}, []uuid.UUID{d}, 0, 0},
		{"project without skills", nil, []uuid.UUID{a}, 0, 0},
		{"duplicate user skills count once", []uuid.UUID{a, b, c}, []uuid.UUID{a, a, a}, 1, 33.33},
		{"duplicate project skills count once", []uuid.UUID{a, a, b}, []uuid.UUID{a}, 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, pct := Score(tt.project, tt.user)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.pct, pct)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		})
	}
}

func TestRank(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	owner := models.User{ID: uuid.New(), Skills: skills(a, b, c)}
	project := models.Project{ID: uuid.New(), OwnerID: owner.ID, Skills: skills(a, b, c)}

	one := models.User{ID: uuid.New(), UserName: "one", Skills: skills(a)}
	three := models.User{ID: uuid.New(), UserName: "three", Skills: skills(a, b, c)}
	none := models.User{ID: uuid.New(), UserName: "none"}
	alsoOne := models.User{ID: uuid.New(), UserName: "alsoOne", Skills: skills(c)}

	got := Rank(project, []models.User{one, owner, three, none, alsoOne})

	var names []string
	for _, cand := range got {
		names = append(names, cand.User.UserName)
		assert.Equal(t, project.ID, cand.ProjectID)
	}
	assert.Equal(t, []string{"three", "one", "alsoOne"}, names)
	assert.Equal(t, 100.0, got[0].MatchingPercentage)
	assert.Len(t, got[0].SharedSkills, 3)
}

func TestRankProjectWithoutSkills(t *testing.T) {
	project := models.Project{ID: uuid.New(), OwnerID: uuid.New()}
	got := Rank(project, []models.User{{ID: uuid.New(), Skills: skills(uuid.New())}})
	assert.Empty(t, got)
}
