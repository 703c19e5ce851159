package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookswap/internal/domain"
)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

func (r *RatingRepo) Find(userID, bookID string) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.First(&rt, "user_id = ? AND book_id = ?", userID, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepo) FindByBook(bookID string) ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.db.Where("book_id = ?", bookID).Find(&out).Error
	return out, err
}

// Save upserts on the (user_id, book_id) primary key; re-rating overwrites.
func (r *RatingRepo) Save(rt *domain.Rating) error {
	if rt.CreatedAt.IsZero() {
		touchInsert(&rt.CreatedAt, &rt.UpdatedAt)
	} else {
		touchUpdate(&rt.UpdatedAt)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"difficulty", "emotion", "enjoyment", "updated_at"}),
	}).Create(rt).Error
}
