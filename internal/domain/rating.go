package domain

import "time"

// Rating holds one user's three 1..5 scores for a book. The composite primary
// key makes re-rating an overwrite, never a second row.
type Rating struct {
	UserID string `gorm:"primaryKey;size:32"`
	BookID string `gorm:"primaryKey;size:32"`

	Difficulty int `gorm:"not null"`
	Emotion    int `gorm:"not null"`
	Enjoyment  int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rating) TableName() string { return "ratings" }

type RatingRepository interface {
	Find(userID, bookID string) (*Rating, error)
	FindByBook(bookID string) ([]Rating, error)
	Save(r *Rating) error
}
