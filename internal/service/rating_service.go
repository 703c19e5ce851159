package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"bookswap/internal/apperr"
	"bookswap/internal/core/cache"
	"bookswap/internal/domain"
)

const avgCacheTTL = 5 * time.Minute

type RatingService struct {
	ratings domain.RatingRepository
	books   domain.BookRepository
	cache   *cache.Cache // optional
}

func NewRatingService(ratings domain.RatingRepository, books domain.BookRepository, c *cache.Cache) *RatingService {
	return &RatingService{ratings: ratings, books: books, cache: c}
}

// Rate upserts the rater's scores for a book and returns fresh averages.
// Validation happens before anything is written.
func (s *RatingService) Rate(ctx context.Context, raterID, bookID string, difficulty, emotion, enjoyment int) (*RatingAverages, error) {
	book, err := s.books.FindByID(bookID)
	if err != nil {
		return nil, apperr.Internal("find book", err)
	}
	if book == nil {
		return nil, apperr.NotFound("book not found")
	}

	if err := validateScore(difficulty, "difficulty"); err != nil {
		return nil, err
	}
	if err := validateScore(emotion, "emotion"); err != nil {
		return nil, err
	}
	if err := validateScore(enjoyment, "enjoyment"); err != nil {
		return nil, err
	}

	rating, err := s.ratings.Find(raterID, bookID)
	if err != nil {
		return nil, apperr.Internal("find rating", err)
	}
	if rating == nil {
		rating = &domain.Rating{UserID: raterID, BookID: bookID}
	}
	rating.Difficulty = difficulty
	rating.Emotion = emotion
	rating.Enjoyment = enjoyment
	if err := s.ratings.Save(rating); err != nil {
		return nil, apperr.Internal("save rating", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, avgKey(bookID))
	}
	return s.compute(bookID)
}

// Averages returns the per-dimension means for a book, through the cache when
// one is configured.
func (s *RatingService) Averages(ctx context.Context, bookID string) (*RatingAverages, error) {
	book, err := s.books.FindByID(bookID)
	if err != nil {
		return nil, apperr.Internal("find book", err)
	}
	if book == nil {
		return nil, apperr.NotFound("book not found")
	}
	if s.cache == nil {
		return s.compute(bookID)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, avgKey(bookID), avgCacheTTL,
		func(context.Context) (*RatingAverages, error) { return s.compute(bookID) })
}

func (s *RatingService) compute(bookID string) (*RatingAverages, error) {
	list, err := s.ratings.FindByBook(bookID)
	if err != nil {
		return nil, apperr.Internal("load ratings", err)
	}
	if len(list) == 0 {
		return &RatingAverages{}, nil
	}

	var d, e, j int
	for _, r := range list {
		d += r.Difficulty
		e += r.Emotion
		j += r.Enjoyment
	}
	n := float64(len(list))
	return &RatingAverages{
		Difficulty: round1(float64(d) / n),
		Emotion:    round1(float64(e) / n),
		Enjoyment:  round1(float64(j) / n),
		Count:      len(list),
	}, nil
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func validateScore(v int, name string) error {
	if v < 1 || v > 5 {
		return apperr.Validationf("%s must be 1..5", name)
	}
	return nil
}

func avgKey(bookID string) string { return fmt.Sprintf("book:%s:avg", bookID) }
