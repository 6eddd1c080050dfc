package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

// Candidate is a user scored against one project.
type Candidate struct {
	ProjectID          uuid.UUID   `json:"projectId"`
	ProjectTitle       string      `json:"projectTitle"`
	User               UserSummary `json:"user"`
	MatchingScore      int         `json:"matchingScore"`
	MatchingPercentage float64     `json:"matchingPercentage"`
	SharedSkills       []string    `json:"sharedSkills"`
}

type UserSummary struct {
	ID            uuid.UUID   `json:"_id"`
	UserName      string      `json:"userName"`
	FullName      string      `json:"fullName"`
	CompanyName   string      `json:"companyName,omitempty"`
	ProfilePic    string      `json:"profilePic"`
	Role          models.Role `json:"userType"`
	AverageRating float64     `json:"averageRating"`
	ReviewCount   int         `json:"reviewCount"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{
		ID:            u.ID,
		UserName:      u.UserName,
		FullName:      u.FullName,
		CompanyName:   u.CompanyName,
		ProfilePic:    u.ProfilePic,
		Role:          u.Role,
		AverageRating: u.AverageRating,
		ReviewCount:   u.ReviewCount,
	}
}

// Score counts the distinct project skills the user also has. The percentage
// is relative to the number of distinct project skills and is 0 when the
// project requires none.
func Score(projectSkills, userSkills []uuid.UUID) (int, float64) {
	required := make(map[uuid.UUID]struct{}, len(projectSkills))
	for _, id := range projectSkills {
		required[id] = struct{}{}
	}
	if len(required) == 0 {
		return 0, 0
	}

	seen := make(map[uuid.UUID]struct{}, len(userSkills))
	score := 0
	for _, id := range userSkills {
		if _, ok := required[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		score++
	}
	return score, round2(float64(score) / float64(len(required)) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rank scores users against project and keeps those sharing at least one
// skill, ordered by score descending. Equal scores keep input order. The
// owner is never a candidate of their own project.
func Rank(project models.Project, users []models.User) []Candidate {
	projectSkills := project.SkillIDs()
	titles := make(map[uuid.UUID]string, len(project.Skills))
	for _, s := range project.Skills {
		titles[s.ID] = s.Title
	}

	out := make([]Candidate, 0, len(users))
	for _, u := range users {
		if u.ID == project.OwnerID {
			continue
		}
		score, pct := Score(projectSkills, u.SkillIDs())
		if score == 0 {
			continue
		}
		out = append(out, Candidate{
			ProjectID:          project.ID,
			ProjectTitle:       project.Title,
			User:               summarize(u),
			MatchingScore:      score,
			MatchingPercentage: pct,
			SharedSkills:       shared(titles, u.Skills),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchingScore > out[j].MatchingScore
	})
	return out
}

func shared(titles map[uuid.UUID]string, skills []models.Category) []string {
	out := []string{}
	seen := map[uuid.UUID]bool{}
	for _, s := range skills {
		if t, ok := titles[s.ID]; ok && !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, t)
		}
	}
	return out
}
