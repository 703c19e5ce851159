package domain

import "time"

// Listing conditions.
const (
	ConditionNew  = "NEW"
	ConditionGood = "GOOD"
	ConditionUsed = "USED"
	ConditionPoor = "POOR"
)

func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionUsed, ConditionPoor:
		return true
	}
	return false
}

type BookListing struct {
	ID        string `gorm:"primaryKey;size:32"`
	OwnerID   string `gorm:"size:32;not null;index:idx_book_listing_owner"`
	BookID    string `gorm:"size:32;not null;index:idx_book_listing_book"`
	Condition string `gorm:"size:10;not null;default:GOOD"`
	Available bool   `gorm:"not null;default:true"`
	Notes     string `gorm:"size:500"`

	Owner *User `gorm:"foreignKey:OwnerID"`
	Book  *Book `gorm:"foreignKey:BookID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BookListing) TableName() string { return "book_listing" }

// BookImage occupies one numbered slot (1..max) on a listing. The composite
// primary key doubles as the race guard for slot allocation.
type BookImage struct {
	ListingID string `gorm:"primaryKey;size:32"`
	ImageNo   int    `gorm:"primaryKey"`
	Path      string `gorm:"size:500;not null"` // served under /uploads/**

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BookImage) TableName() string { return "book_images" }

type ListingRepository interface {
	Create(l *BookListing) error
	FindByID(id string) (*BookListing, error)
	FindAvailable() ([]BookListing, error)
	FindByOwner(ownerID string) ([]BookListing, error)
	Update(l *BookListing) error
	Delete(id string) error
}

type ImageRepository interface {
	Create(img *BookImage) error
	Find(listingID string, imageNo int) (*BookImage, error)
	FindByListing(listingID string) ([]BookImage, error)
	CountByListing(listingID string) (int64, error)
	Delete(listingID string, imageNo int) error
	DeleteByListing(listingID string) error
}
