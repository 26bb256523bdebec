package store

import (
	"math"
	"sort"
	"time"

	"otakumart/internal/models"
)

// Window is a dashboard time range ending now.
type Window string

const (
	Window7Days   Window = "7days"
	Window30Days  Window = "30days"
	Window90Days  Window = "90days"
	Window6Months Window = "6months"
	Window1Year   Window = "1year"
)

// start applies the window's delta to ref, going backwards. Unknown windows
// fall back to 30 days, matching the dashboard default.
func (w Window) start(ref time.Time) time.Time {
	switch w {
	case Window7Days:
		return ref.AddDate(0, 0, -7)
	case Window90Days:
		return ref.AddDate(0, 0, -90)
	case Window6Months:
		return ref.AddDate(0, -6, 0)
	case Window1Year:
		return ref.AddDate(0, -12, 0)
	default:
		return ref.AddDate(0, 0, -30)
	}
}

// Summary is the dashboard headline block for one time window.
type Summary struct {
	TotalReviews       int         `json:"totalReviews"`
	AverageRating      float64     `json:"averageRating"`
	HelpfulVotes       int         `json:"helpfulVotes"`
	VerifiedPercentage int         `json:"verifiedPercentage"`
	TrendPercentage    int         `json:"trendPercentage"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// ProductRating is one row of the dashboard's product table.
type ProductRating struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// Aggregator derives dashboard statistics from the review store. It keeps no
// state of its own: every query recomputes from the current collection.
type Aggregator struct {
	reviews *ReviewStore
	catalog *CatalogStore
}

func NewAggregator(reviews *ReviewStore, catalog *CatalogStore) *Aggregator {
	return &Aggregator{reviews: reviews, catalog: catalog}
}

// Summarize computes the headline statistics for reviews dated inside the
// window, plus a trend percentage against the immediately preceding window
// of equal length. A previous window with zero reviews and a current window
// with more than zero reports a literal +100.
func (a *Aggregator) Summarize(w Window) Summary {
	return a.summarizeAt(w, time.Now().UTC())
}

func (a *Aggregator) summarizeAt(w Window, now time.Time) Summary {
	start := w.start(now)
	prevStart := w.start(start)

	summary := Summary{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	ratingSum := 0
	verified := 0
	previous := 0

	for _, r := range a.reviews.Reviews() {
		if r.Date.After(start) {
			summary.TotalReviews++
			ratingSum += r.Rating
			summary.HelpfulVotes += r.Helpful
			summary.RatingDistribution[r.Rating]++
			if r.IsVerifiedPurchase {
				verified++
			}
		} else if r.Date.After(prevStart) {
			previous++
		}
	}

	if summary.TotalReviews > 0 {
		summary.AverageRating = math.Round(float64(ratingSum)/float64(summary.TotalReviews)*10) / 10
		summary.VerifiedPercentage = int(math.Round(float64(verified) / float64(summary.TotalReviews) * 100))
	}

	switch {
	case previous > 0:
		summary.TrendPercentage = int(math.Round(float64(summary.TotalReviews-previous) / float64(previous) * 100))
	case summary.TotalReviews > 0:
		summary.TrendPercentage = 100
	}

	return summary
}

// ProductRatings returns the highest-rated products inside the window,
// limited to limit rows (0 means all).
func (a *Aggregator) ProductRatings(w Window, limit int) []ProductRating {
	return a.productRatingsAt(w, limit, time.Now().UTC())
}

func (a *Aggregator) productRatingsAt(w Window, limit int, now time.Time) []ProductRating {
	start := w.start(now)

	counts := make(map[string]int)
	sums := make(map[string]int)
	for _, r := range a.reviews.Reviews() {
		if r.Date.After(start) {
			counts[r.ProductID]++
			sums[r.ProductID] += r.Rating
		}
	}

	rows := make([]ProductRating, 0, len(counts))
	for _, p := range a.catalog.Products() {
		count := counts[p.ID]
		if count == 0 {
			continue
		}
		rows = append(rows, ProductRating{
			ProductID:     p.ID,
			Name:          p.Name,
			ReviewCount:   count,
			AverageRating: math.Round(float64(sums[p.ID])/float64(count)*10) / 10,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AverageRating > rows[j].AverageRating
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// naiveAverageRating recomputes a product's average from scratch. Used by
// tests to verify the incrementally maintained aggregates.
func naiveAverageRating(reviews []models.Review, productID string) float64 {
	sum, count := 0, 0
	for _, r := range reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
