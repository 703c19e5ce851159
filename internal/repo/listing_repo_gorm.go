package repo

import (
	"errors"

	"gorm.io/gorm"

	"bookswap/internal/domain"
)

type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) Create(l *domain.BookListing) error {
	touchInsert(&l.CreatedAt, &l.UpdatedAt)
	return r.db.Create(l).Error
}

func (r *ListingRepo) FindByID(id string) (*domain.BookListing, error) {
	var l domain.BookListing
	err := r.db.Preload("Owner").Preload("Book").First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) FindAvailable() ([]domain.BookListing, error) {
	var out []domain.BookListing
	err := r.db.Preload("Owner").Preload("Book").
		Where("available = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ListingRepo) FindByOwner(ownerID string) ([]domain.BookListing, error) {
	var out []domain.BookListing
	err := r.db.Preload("Owner").Preload("Book").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ListingRepo) Update(l *domain.BookListing) error {
	touchUpdate(&l.UpdatedAt)
	return r.db.Save(l).Error
}

func (r *ListingRepo) Delete(id string) error {
	return r.db.Delete(&domain.BookListing{}, "id = ?", id).Error
}
