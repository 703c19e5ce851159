package service

import (
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
	"bookswap/pkg/utils"
)

// Upload describes an incoming file independent of the transport; the handler
// unwraps the multipart header into one of these.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// StorageService owns listing images: validation, slot allocation, the files
// on disk and their metadata rows. The row is the source of truth for what is
// live; a crash between file write and row insert can leave an orphan file,
// which is accepted.
type StorageService struct {
	images    domain.ImageRepository
	listings  domain.ListingRepository
	store     FileStore
	log       *zap.Logger
	maxImages int
	maxBytes  int64
}

func NewStorageService(images domain.ImageRepository, listings domain.ListingRepository, store FileStore, log *zap.Logger, maxImages, maxSizeMB int) *StorageService {
	return &StorageService{
		images:    images,
		listings:  listings,
		store:     store,
		log:       log,
		maxImages: maxImages,
		maxBytes:  int64(maxSizeMB) << 20,
	}
}

func (s *StorageService) AddImage(actorID, listingID string, up Upload) (*ImageView, error) {
	listing, err := s.ownedListing(actorID, listingID)
	if err != nil {
		return nil, err
	}

	count, err := s.images.CountByListing(listing.ID)
	if err != nil {
		return nil, apperr.Internal("count images", err)
	}
	if count >= int64(s.maxImages) {
		return nil, apperr.Capacity(fmt.Sprintf("image limit reached (%d)", s.maxImages))
	}

	ext, err := s.validateUpload(up)
	if err != nil {
		return nil, err
	}

	// The count check above is an optimization; the slot search re-validates
	// independently and the composite primary key is the final guard.
	existing, err := s.images.FindByListing(listing.ID)
	if err != nil {
		return nil, apperr.Internal("load images", err)
	}
	slot := nextFreeSlot(existing, s.maxImages)
	if slot == 0 {
		return nil, apperr.Capacity("no free image slot")
	}

	publicPath := fmt.Sprintf("/uploads/listings/%s/%d-%s.%s", listing.ID, slot, utils.NewID(), ext)
	if err := s.store.Save(publicPath, up.Reader); err != nil {
		return nil, apperr.Storage("store image", err)
	}

	img := &domain.BookImage{ListingID: listing.ID, ImageNo: slot, Path: publicPath}
	if err := s.images.Create(img); err != nil {
		// Roll the file back so a lost slot race does not leave junk behind.
		_ = s.store.Remove(publicPath)
		return nil, apperr.Internal("save image row", err)
	}
	s.log.Info("image added",
		zap.String("listing_id", listing.ID),
		zap.Int("image_no", slot),
	)
	return &ImageView{ImageNo: slot, Path: publicPath}, nil
}

// DeleteImage removes the stored file (already-missing is fine) and the row.
func (s *StorageService) DeleteImage(actorID, listingID string, imageNo int) error {
	listing, err := s.ownedListing(actorID, listingID)
	if err != nil {
		return err
	}
	img, err := s.images.Find(listing.ID, imageNo)
	if err != nil {
		return apperr.Internal("find image", err)
	}
	if img == nil {
		return apperr.NotFound("image not found")
	}
	if err := s.store.Remove(img.Path); err != nil {
		return apperr.Storage("remove image file", err)
	}
	if err := s.images.Delete(listing.ID, imageNo); err != nil {
		return apperr.Internal("delete image row", err)
	}
	s.log.Info("image deleted",
		zap.String("listing_id", listing.ID),
		zap.Int("image_no", imageNo),
	)
	return nil
}

func (s *StorageService) ListImages(listingID string) ([]ImageView, error) {
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
	return toImageViews(imgs), nil
}

func (s *StorageService) ownedListing(actorID, listingID string) (*domain.BookListing, error) {
	listing, err := s.listings.FindByID(listingID)
	if err != nil {
		return nil, apperr.Internal("find listing", err)
	}
	if listing == nil {
		return nil, apperr.NotFound("listing not found")
	}
	if listing.OwnerID != actorID {
		return nil, apperr.Forbidden("you are not the owner of this listing")
	}
	return listing, nil
}

func (s *StorageService) validateUpload(up Upload) (string, error) {
	if up.Reader == nil || up.Size == 0 {
		return "", apperr.Validation("file is empty")
	}
	if up.Size > s.maxBytes {
		return "", apperr.Validationf("file too large (max %dMB)", s.maxBytes>>20)
	}
	ct := strings.ToLower(up.ContentType)
	if ct != "image/jpeg" && ct != "image/png" {
		return "", apperr.Validation("only JPEG/PNG allowed")
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(up.Filename), "."))
	switch ext {
	case "jpg", "jpeg", "png":
		return ext, nil
	}
	return "", apperr.Validation("only jpg/jpeg/png extensions allowed")
}

// nextFreeSlot returns the smallest unused slot in 1..max, or 0 if none.
func nextFreeSlot(existing []domain.BookImage, max int) int {
	used := make(map[int]bool, len(existing))
	for _, img := range existing {
		used[img.ImageNo] = true
	}
	for i := 1; i <= max; i++ {
		if !used[i] {
			return i
		}
	}
	return 0
}
