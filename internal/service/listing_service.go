package service

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
	"bookswap/pkg/utils"
)

const notesMax = 500

// ListingForm is the create/update input for a listing. Title and author go
// through the catalog's find-or-create, so editing them may retarget the
// listing to a different book row.
type ListingForm struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	ISBN      string `json:"isbn"`
	Condition string `json:"condition"`
	Available bool   `json:"available"`
	Notes     string `json:"notes"`
}

type ListingService struct {
	listings domain.ListingRepository
	images   domain.ImageRepository
	books    *BookService
	store    FileStore
	log      *zap.Logger
}

func NewListingService(listings domain.ListingRepository, images domain.ImageRepository, books *BookService, store FileStore, log *zap.Logger) *ListingService {
	return &ListingService{listings: listings, images: images, books: books, store: store, log: log}
}

func (s *ListingService) Create(ownerID string, form ListingForm) (*ListingDetail, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	book, err := s.books.FindOrCreate(form.Title, form.Author, form.ISBN)
	if err != nil {
		return nil, err
	}
	listing := &domain.BookListing{
		ID:        utils.NewID(),
		OwnerID:   ownerID,
		BookID:    book.ID,
		Condition: form.Condition,
		Available: form.Available,
		Notes:     strings.TrimSpace(form.Notes),
	}
	if err := s.listings.Create(listing); err != nil {
		return nil, apperr.Internal("create listing", err)
	}
	s.log.Info("listing created",
		zap.String("listing_id", listing.ID),
		zap.String("owner_id", ownerID),
		zap.String("book_id", book.ID),
	)
	return s.Detail(listing.ID)
}

func (s *ListingService) Update(ownerID, listingID string, form ListingForm) (*ListingDetail, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	listing, err := s.ownedListing(ownerID, listingID)
	if err != nil {
		return nil, err
	}
	book, err := s.books.FindOrCreate(form.Title, form.Author, form.ISBN)
	if err != nil {
		return nil, err
	}
	listing.BookID = book.ID
	listing.Book = book
	listing.Condition = form.Condition
	listing.Available = form.Available
	listing.Notes = strings.TrimSpace(form.Notes)
	if err := s.listings.Update(listing); err != nil {
		return nil, apperr.Internal("update listing", err)
	}
	return s.Detail(listingID)
}

// Delete removes the listing, its image rows and the stored files. Files go
// best-effort; the rows are the source of truth.
func (s *ListingService) Delete(ownerID, listingID string) error {
	listing, err := s.ownedListing(ownerID, listingID)
	if err != nil {
		return err
	}
	imgs, err := s.images.FindByListing(listing.ID)
	if err != nil {
		return apperr.Internal("load images", err)
	}
	for _, img := range imgs {
		if err := s.store.Remove(img.Path); err != nil {
			s.log.Warn("remove image file", zap.String("path", img.Path), zap.Error(err))
		}
	}
	if err := s.images.DeleteByListing(listing.ID); err != nil {
		return apperr.Internal("delete images", err)
	}
	if err := s.listings.Delete(listing.ID); err != nil {
		return apperr.Internal("delete listing", err)
	}
	s.log.Info("listing deleted", zap.String("listing_id", listing.ID))
	return nil
}

func (s *ListingService) Detail(listingID string) (*ListingDetail, error) {
	listing, err := s.listings.FindByID(listingID)
	if err != nil {
		return nil, apperr.Internal("find listing", err)
	}
	if listing == nil {
		return nil, apperr.NotFound("listing not found")
	}
	imgs, err := s.images.FindByListing(listingID)
	if err != nil {
		return nil, apperr.Internal("load images", err)
	}
	return &ListingDetail{
		ListingCard: toListingCard(listing),
		Notes:       listing.Notes,
		Images:      toImageViews(imgs),
	}, nil
}

// Browse lists every available listing, newest first.
func (s *ListingService) Browse() ([]ListingCard, error) {
	listings, err := s.listings.FindAvailable()
	if err != nil {
		return nil, apperr.Internal("browse listings", err)
	}
	return toCards(listings), nil
}

// MyLibrary lists everything the user owns, available or not.
func (s *ListingService) MyLibrary(ownerID string) ([]ListingCard, error) {
	listings, err := s.listings.FindByOwner(ownerID)
	if err != nil {
		return nil, apperr.Internal("load library", err)
	}
	return toCards(listings), nil
}

func (s *ListingService) ownedListing(ownerID, listingID string) (*domain.BookListing, error) {
	listing, err := s.listings.FindByID(listingID)
	if err != nil {
		return nil, apperr.Internal("find listing", err)
	}
	if listing == nil {
		return nil, apperr.NotFound("listing not found")
	}
	if listing.OwnerID != ownerID {
		return nil, apperr.Forbidden("you are not the owner of this listing")
	}
	return listing, nil
}

func validateForm(form *ListingForm) error {
	if form.Condition == "" {
		form.Condition = domain.ConditionGood
	}
	if !domain.ValidCondition(form.Condition) {
		return apperr.Validation("condition must be NEW, GOOD, USED or POOR")
	}
	if utf8.RuneCountInString(form.Notes) > notesMax {
		return apperr.Validationf("notes must be at most %d characters", notesMax)
	}
	return nil
}

func toCards(listings []domain.BookListing) []ListingCard {
	out := make([]ListingCard, 0, len(listings))
	for i := range listings {
		out = append(out, toListingCard(&listings[i]))
	}
	return out
}
