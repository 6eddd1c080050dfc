package ranking

// Strategy is the closed set of orderings for a project's applications.
type Strategy int

const (
	// Oldest is the default: creation time ascending.
	Oldest Strategy = iota
	MostReviews
	LeastReviews
	HighestHourlyRate
	LowestHourlyRate
	HighestAverageRating
	LowestAverageRating
)

var strategyNames = map[string]Strategy{
	"mostReviews":          MostReviews,
	"leastReviews":         LeastReviews,
	"highestHourlyRate":    HighestHourlyRate,
	"lowestHourlyRate":     LowestHourlyRate,
	"highestAverageRating": HighestAverageRating,
	"lowestAverageRating":  LowestAverageRating,
}

// ParseStrategy is case-sensitive. Unknown or empty names map to Oldest
// without an error; clients rely on that.
func ParseStrategy(name string) Strategy {
	if s, ok := strategyNames[name]; ok {
		return s
	}
	return Oldest
}

func (s Strategy) String() string {
	for name, v := range strategyNames {
		if v == s {
			return name
		}
	}
	return "createdAt"
}

// Column is a sortable attribute of an application or its applicant.
type Column string

const (
	ColumnCreatedAt     Column = "createdAt"
	ColumnBid           Column = "bid"
	ColumnReviewCount   Column = "reviewCount"
	ColumnAverageRating Column = "averageRating"
)

type Ordering struct {
	Column Column
	Desc   bool
}

// Ordering maps a strategy onto the column it sorts by. Review count and
// average rating are stored on the user, so every strategy sorts in the
// database.
func (s Strategy) Ordering() Ordering {
	switch s {
	case MostReviews:
		return Ordering{Column: ColumnReviewCount, Desc: true}
	case LeastReviews:
		return Ordering{Column: ColumnReviewCount}
	case HighestHourlyRate:
		return Ordering{Column: ColumnBid, Desc: true}
	case LowestHourlyRate:
		return Ordering{Column: ColumnBid}
	case HighestAverageRating:
		return Ordering{Column: ColumnAverageRating, Desc: true}
	case LowestAverageRating:
		return Ordering{Column: ColumnAverageRating}
	default:
		return Ordering{Column: ColumnCreatedAt}
	}
}
