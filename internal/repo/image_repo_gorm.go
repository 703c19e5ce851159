package repo

import (
	"errors"

	"gorm.io/gorm"

	"bookswap/internal/domain"
)

type ImageRepo struct{ db *gorm.DB }

func NewImageRepo(db *gorm.DB) *ImageRepo { return &ImageRepo{db: db} }

func (r *ImageRepo) Create(img *domain.BookImage) error {
	touchInsert(&img.CreatedAt, &img.UpdatedAt)
	return r.db.Create(img).Error
}

func (r *ImageRepo) Find(listingID string, imageNo int) (*domain.BookImage, error) {
	var img domain.BookImage
	err := r.db.First(&img, "listing_id = ? AND image_no = ?", listingID, imageNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepo) FindByListing(listingID string) ([]domain.BookImage, error) {
	var out []domain.BookImage
	err := r.db.Where("listing_id = ?", listingID).Order("image_no ASC").Find(&out).Error
	return out, err
}

func (r *ImageRepo) CountByListing(listingID string) (int64, error) {
	var n int64
	err := r.db.Model(&domain.BookImage{}).Where("listing_id = ?", listingID).Count(&n).Error
	return n, err
}

func (r *ImageRepo) Delete(listingID string, imageNo int) error {
	return r.db.Delete(&domain.BookImage{}, "listing_id = ? AND image_no = ?", listingID, imageNo).Error
}

func (r *ImageRepo) DeleteByListing(listingID string) error {
	return r.db.Delete(&domain.BookImage{}, "listing_id = ?", listingID).Error
}
