package domain

import "time"

// Swap statuses. PENDING may move to ACCEPTED or DECLINED by the listing
// owner; ACCEPTED may move to COMPLETED or CANCELLED by a participant.
// DECLINED, COMPLETED and CANCELLED are terminal.
const (
	SwapPending   = "PENDING"
	SwapAccepted  = "ACCEPTED"
	SwapDeclined  = "DECLINED"
	SwapCompleted = "COMPLETED"
	SwapCancelled = "CANCELLED"
)

// SwapMessageMax caps the optional free-text message on a request.
const SwapMessageMax = 300

// CanTransition reports whether a swap may move from one status to another.
func CanTransition(from, to string) bool {
	switch from {
	case SwapPending:
		return to == SwapAccepted || to == SwapDeclined
	case SwapAccepted:
		return to == SwapCompleted || to == SwapCancelled
	}
	return false
}

type SwapRequest struct {
	ID          string `gorm:"primaryKey;size:32"`
	ListingID   string `gorm:"size:32;not null;index:idx_swap_listing"`
	RequesterID string `gorm:"size:32;not null;index:idx_swap_requester"`
	Status      string `gorm:"size:20;not null;default:PENDING"`
	Message     string `gorm:"size:300"`

	Listing   *BookListing `gorm:"foreignKey:ListingID"`
	Requester *User        `gorm:"foreignKey:RequesterID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SwapRequest) TableName() string { return "swap_requests" }

type SwapRepository interface {
	Create(s *SwapRequest) error
	FindByID(id string) (*SwapRequest, error)
	// FindByOwner returns swaps targeting listings owned by ownerID, newest first.
	FindByOwner(ownerID string) ([]SwapRequest, error)
	// FindByRequester returns swaps created by requesterID, newest first.
	FindByRequester(requesterID string) ([]SwapRequest, error)
	Update(s *SwapRequest) error
}
