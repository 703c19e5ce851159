package service

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
	"bookswap/pkg/utils"
)

// SwapService runs the request/accept/decline/complete/cancel workflow.
// Owners answer pending requests; once accepted, either participant may close
// the swap (completed or cancelled) unless ownerOnlyClose narrows that to the
// owner.
type SwapService struct {
	swaps    domain.SwapRepository
	listings domain.ListingRepository
	users    domain.UserRepository
	log      *zap.Logger

	ownerOnlyClose bool
}

func NewSwapService(swaps domain.SwapRepository, listings domain.ListingRepository, users domain.UserRepository, log *zap.Logger, ownerOnlyClose bool) *SwapService {
	return &SwapService{
		swaps:          swaps,
		listings:       listings,
		users:          users,
		log:            log,
		ownerOnlyClose: ownerOnlyClose,
	}
}

// Create opens a PENDING request against a listing. Several pending requests
// for one listing may coexist; the owner picks which to accept.
func (s *SwapService) Create(requesterID, listingID, message string) (*SwapView, error) {
	listing, err := s.listings.FindByID(listingID)
	if err != nil {
		return nil, apperr.Internal("find listing", err)
	}
	if listing == nil {
		return nil, apperr.NotFound("listing not found")
	}
	if !listing.Available {
		return nil, apperr.InvalidState("listing not available")
	}
	if listing.OwnerID == requesterID {
		return nil, apperr.Validation("cannot request your own listing")
	}

	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > domain.SwapMessageMax {
		return nil, apperr.Validationf("message must be at most %d characters", domain.SwapMessageMax)
	}

	requester, err := s.users.FindByID(requesterID)
	if err != nil {
		return nil, apperr.Internal("find requester", err)
	}
	if requester == nil {
		return nil, apperr.Unauthorized("unknown requester")
	}

	swap := &domain.SwapRequest{
		ID:          utils.NewID(),
		ListingID:   listing.ID,
		RequesterID: requesterID,
		Status:      domain.SwapPending,
		Message:     message,
	}
	if err := s.swaps.Create(swap); err != nil {
		return nil, apperr.Internal("create swap", err)
	}
	s.log.Info("swap requested",
		zap.String("swap_id", swap.ID),
		zap.String("listing_id", listing.ID),
		zap.String("requester_id", requesterID),
	)

	swap.Listing = listing
	swap.Requester = requester
	v := toSwapView(swap)
	return &v, nil
}

// Respond lets the listing owner accept or decline a pending request.
func (s *SwapService) Respond(actorID, swapID string, accept bool) (*SwapView, error) {
	swap, err := s.load(swapID)
	if err != nil {
		return nil, err
	}
	if swap.Listing == nil || swap.Listing.OwnerID != actorID {
		return nil, apperr.Forbidden("only the listing owner can respond")
	}
	next := domain.SwapDeclined
	if accept {
		next = domain.SwapAccepted
	}
	return s.transition(swap, domain.SwapPending, next)
}

// Complete marks an accepted swap as carried out.
func (s *SwapService) Complete(actorID, swapID string) (*SwapView, error) {
	swap, err := s.load(swapID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCloser(actorID, swap); err != nil {
		return nil, err
	}
	return s.transition(swap, domain.SwapAccepted, domain.SwapCompleted)
}

// Cancel abandons an accepted swap.
func (s *SwapService) Cancel(actorID, swapID string) (*SwapView, error) {
	swap, err := s.load(swapID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCloser(actorID, swap); err != nil {
		return nil, err
	}
	return s.transition(swap, domain.SwapAccepted, domain.SwapCancelled)
}

// Inbox returns requests targeting the user's listings, newest first.
func (s *SwapService) Inbox(userID string) ([]SwapView, error) {
	swaps, err := s.swaps.FindByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("load inbox", err)
	}
	return toSwapViews(swaps), nil
}

// Outbox returns requests the user created, newest first.
func (s *SwapService) Outbox(userID string) ([]SwapView, error) {
	swaps, err := s.swaps.FindByRequester(userID)
	if err != nil {
		return nil, apperr.Internal("load outbox", err)
	}
	return toSwapViews(swaps), nil
}

func (s *SwapService) load(swapID string) (*domain.SwapRequest, error) {
	swap, err := s.swaps.FindByID(swapID)
	if err != nil {
		return nil, apperr.Internal("find swap", err)
	}
	if swap == nil {
		return nil, apperr.NotFound("swap not found")
	}
	return swap, nil
}

func (s *SwapService) requireCloser(actorID string, swap *domain.SwapRequest) error {
	if swap.Listing == nil {
		return apperr.Forbidden("unauthorized")
	}
	isOwner := swap.Listing.OwnerID == actorID
	if s.ownerOnlyClose {
		if !isOwner {
			return apperr.Forbidden("only the listing owner can close this swap")
		}
		return nil
	}
	if !isOwner && swap.RequesterID != actorID {
		return apperr.Forbidden("only participants can close this swap")
	}
	return nil
}

func (s *SwapService) transition(swap *domain.SwapRequest, expect, next string) (*SwapView, error) {
	if swap.Status != expect {
		return nil, apperr.InvalidState("invalid state: must be " + expect)
	}
	if !domain.CanTransition(swap.Status, next) {
		return nil, apperr.InvalidState("transition not allowed")
	}
	swap.Status = next
	if err := s.swaps.Update(swap); err != nil {
		return nil, apperr.Internal("update swap", err)
	}
	s.log.Info("swap transitioned",
		zap.String("swap_id", swap.ID),
		zap.String("status", next),
	)
	v := toSwapView(swap)
	return &v, nil
}

func toSwapViews(swaps []domain.SwapRequest) []SwapView {
	out := make([]SwapView, 0, len(swaps))
	for i := range swaps {
		out = append(out, toSwapView(&swaps[i]))
	}
	return out
}
