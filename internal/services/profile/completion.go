package profile

import (
	"math"
	"strings"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

// RequiredFields is the denominator of the completion percentage.
const RequiredFields = 7

// Completion scores how complete a profile is. String fields count once when
// non-blank; social profiles and skills count one unit per element, so a
// profile can reach 100 with fewer than seven fields filled. The result is
// rounded to two decimals and never exceeds 100.
func Completion(u models.User) float64 {
	units := 0

	name := u.CompanyName
	if strings.TrimSpace(name) == "" {
		name = u.FullName
	}
	for _, s := range []string{name, u.Intro, u.PhoneNumber, u.Address, u.Website} {
		if strings.TrimSpace(s) != "" {
			units++
		}
	}
	units += len(u.SocialProfiles)
	units += len(u.Skills)

	pct := math.Round(float64(units)/RequiredFields*100*100) / 100
	return math.Min(pct, 100)
}
