package repo

import (
	"errors"

	"gorm.io/gorm"

	"bookswap/internal/domain"
)

type SwapRepo struct{ db *gorm.DB }

func NewSwapRepo(db *gorm.DB) *SwapRepo { return &SwapRepo{db: db} }

func (r *SwapRepo) Create(s *domain.SwapRequest) error {
	touchInsert(&s.CreatedAt, &s.UpdatedAt)
	return r.db.Create(s).Error
}

func (r *SwapRepo) FindByID(id string) (*domain.SwapRequest, error) {
	var s domain.SwapRequest
	err := r.preloaded().First(&s, "swap_requests.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SwapRepo) FindByOwner(ownerID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.preloaded().
		Joins("JOIN book_listing ON book_listing.id = swap_requests.listing_id").
		Where("book_listing.owner_id = ?", ownerID).
		Order("swap_requests.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *SwapRepo) FindByRequester(requesterID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.preloaded().
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *SwapRepo) Update(s *domain.SwapRequest) error {
	touchUpdate(&s.UpdatedAt)
	return r.db.Save(s).Error
}

func (r *SwapRepo) preloaded() *gorm.DB {
	return r.db.Model(&domain.SwapRequest{}).
		Preload("Requester").
		Preload("Listing").
		Preload("Listing.Owner").
		Preload("Listing.Book")
}
