package repo

import (
	"errors"

	"gorm.io/gorm"

	"bookswap/internal/domain"
)

type BookRepo struct{ db *gorm.DB }

func NewBookRepo(db *gorm.DB) *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) Create(b *domain.Book) error {
	touchInsert(&b.CreatedAt, &b.UpdatedAt)
	return r.db.Create(b).Error
}

func (r *BookRepo) FindByID(id string) (*domain.Book, error) {
	var b domain.Book
	err := r.db.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepo) FindByKey(titleKey, authorKey string) (*domain.Book, error) {
	var b domain.Book
	err := r.db.First(&b, "title_key = ? AND author_key = ?", titleKey, authorKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
