package store

import (
	"math"
	"sync"
	"time"

	"otakumart/internal/kvstore"
	"otakumart/internal/logger"
	"otakumart/internal/models"

	"github.com/google/uuid"
)

// ratingAgg is the incrementally maintained per-product aggregate: running
// sum, count and star distribution, updated on every mutation instead of
// re-derived per query. Rebuilt from the collection on load.
type ratingAgg struct {
	sum   int
	count int
	dist  [6]int // index by star value, 0 unused
}

// ReviewUpdate is a partial review patch. Nil fields are left untouched;
// product and user bindings are not patchable.
type ReviewUpdate struct {
	Rating  *int
	Title   *string
	Comment *string
}

// ReviewStore holds product reviews and their per-product rating aggregates.
// At most one review exists per (product, user) pair. Ownership of update
// and delete is deliberately not enforced here; callers decide.
type ReviewStore struct {
	kv       kvstore.Store
	mu       sync.RWMutex
	reviews  []models.Review
	aggs     map[string]*ratingAgg
	notifier Notifier
}

// NewReviewStore loads persisted reviews, falling back to the built-in
// sample set when the key is absent or unparseable.
func NewReviewStore(kv kvstore.Store, notifier Notifier) (*ReviewStore, error) {
	s := &ReviewStore{kv: kv, notifier: notifier}

	found, err := load(kv, keyReviews, &s.reviews)
	if err != nil {
		return nil, err
	}
	if !found {
		s.reviews = seedReviews()
		if err := persist(kv, keyReviews, s.reviews); err != nil {
			return nil, err
		}
		logger.Info("Reviews seeded", "count", len(s.reviews))
	}

	s.rebuildAggregates()
	return s, nil
}

func (s *ReviewStore) rebuildAggregates() {
	s.aggs = make(map[string]*ratingAgg)
	for _, r := range s.reviews {
		s.aggFor(r.ProductID).add(r.Rating)
	}
}

func (s *ReviewStore) aggFor(productID string) *ratingAgg {
	agg, ok := s.aggs[productID]
	if !ok {
		agg = &ratingAgg{}
		s.aggs[productID] = agg
	}
	return agg
}

func (a *ratingAgg) add(rating int) {
	a.sum += rating
	a.count++
	a.dist[rating]++
}

func (a *ratingAgg) remove(rating int) {
	a.sum -= rating
	a.count--
	a.dist[rating]--
}

// AddReview rejects a second review for the same (product, user) pair with
// no mutation. On success it assigns id, date and a zero helpful count.
func (s *ReviewStore) AddReview(review models.Review) (models.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return models.Review{}, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reviews {
		if r.ProductID == review.ProductID && r.UserID == review.UserID {
			s.notifier.Error("Review rejected", "You have already reviewed this product")
			return models.Review{}, ErrAlreadyReviewed
		}
	}

	review.ID = "review-" + uuid.New().String()
	review.Date = time.Now().UTC()
	review.Helpful = 0

	s.reviews = append(s.reviews, review)
	if err := persist(s.kv, keyReviews, s.reviews); err != nil {
		s.reviews = s.reviews[:len(s.reviews)-1]
		return models.Review{}, err
	}

	s.aggFor(review.ProductID).add(review.Rating)
	s.notifier.Success("Review submitted", "Thank you for your feedback!")
	return review, nil
}

// UpdateReview applies a partial patch by id, unconditionally: ownership is
// the caller's concern. Unknown ids are a silent no-op.
func (s *ReviewStore) UpdateReview(id string, patch ReviewUpdate) error {
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID != id {
			continue
		}
		r := &s.reviews[i]
		if patch.Rating != nil && *patch.Rating != r.Rating {
			agg := s.aggFor(r.ProductID)
			agg.remove(r.Rating)
			agg.add(*patch.Rating)
			r.Rating = *patch.Rating
		}
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Comment != nil {
			r.Comment = *patch.Comment
		}
		if err := persist(s.kv, keyReviews, s.reviews); err != nil {
			return err
		}
		s.notifier.Success("Review updated", "Your review has been updated successfully.")
		return nil
	}
	return nil
}

// DeleteReview removes a review by id, unconditionally. Unknown ids are a
// silent no-op.
func (s *ReviewStore) DeleteReview(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID != id {
			continue
		}
		removed := s.reviews[i]
		s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
		if err := persist(s.kv, keyReviews, s.reviews); err != nil {
			return err
		}
		s.aggFor(removed.ProductID).remove(removed.Rating)
		s.notifier.Success("Review deleted", "Your review has been removed.")
		return nil
	}
	return nil
}

// MarkHelpful increments the helpful count by one. Repeat calls are not
// deduplicated here; the presentation layer limits them.
func (s *ReviewStore) MarkHelpful(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews[i].Helpful++
			return persist(s.kv, keyReviews, s.reviews)
		}
	}
	return nil
}

// Review looks a review up by id.
func (s *ReviewStore) Review(id string) (models.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reviews {
		if r.ID == id {
			return r, true
		}
	}
	return models.Review{}, false
}

// ProductReviews lists the reviews for one product.
func (s *ReviewStore) ProductReviews(productID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// UserReviews lists the reviews written by one user.
func (s *ReviewStore) UserReviews(userID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// HasUserReviewed reports whether the (product, user) pair already exists.
func (s *ReviewStore) HasUserReviewed(productID, userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return true
		}
	}
	return false
}

// AverageRating is the mean rating rounded to one decimal, a literal 0 when
// the product has no reviews.
func (s *ReviewStore) AverageRating(productID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg, ok := s.aggs[productID]
	if !ok || agg.count == 0 {
		return 0
	}
	return math.Round(float64(agg.sum)/float64(agg.count)*10) / 10
}

// RatingDistribution maps every star value 1..5 to its review count, with
// explicit zeros for empty buckets.
func (s *ReviewStore) RatingDistribution(productID string) map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if agg, ok := s.aggs[productID]; ok {
		for star := 1; star <= 5; star++ {
			dist[star] = agg.dist[star]
		}
	}
	return dist
}

// Reviews returns the whole collection, for the analytics aggregator.
func (s *ReviewStore) Reviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}
