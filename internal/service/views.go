package service

import (
	"time"

	"bookswap/internal/domain"
)

// View types returned to the transport layer. Contact fields are resolved
// here, once, through domain.ResolveContact; handlers never see raw users.

type UserPublic struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Contact     string `json:"contact,omitempty"`
}

type BookView struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

type ImageView struct {
	ImageNo int    `json:"imageNo"`
	Path    string `json:"path"`
}

type ListingCard struct {
	ID        string     `json:"id"`
	Book      BookView   `json:"book"`
	Owner     UserPublic `json:"owner"`
	Condition string     `json:"condition"`
	Available bool       `json:"available"`
}

type ListingDetail struct {
	ListingCard
	Notes  string      `json:"notes,omitempty"`
	Images []ImageView `json:"images"`
}

type SwapView struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Listing   ListingCard `json:"listing"`
	Owner     UserPublic  `json:"owner"`
	Requester UserPublic  `json:"requester"`
	CreatedAt time.Time   `json:"createdAt"`
}

type RatingAverages struct {
	Difficulty float64 `json:"difficulty"`
	Emotion    float64 `json:"emotion"`
	Enjoyment  float64 `json:"enjoyment"`
	Count      int     `json:"count"`
}

type Profile struct {
	DisplayName     string `json:"displayName"`
	PublicContact   bool   `json:"publicContact"`
	PreferredMethod string `json:"preferredMethod,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty"`
}

func toUserPublic(u *domain.User, reveal bool) UserPublic {
	if u == nil {
		return UserPublic{}
	}
	return UserPublic{
		ID:          u.ID,
		DisplayName: u.Username,
		Contact:     domain.ResolveContact(u, reveal),
	}
}

func toBookView(b *domain.Book) BookView {
	if b == nil {
		return BookView{}
	}
	return BookView{ID: b.ID, Title: b.Title, Author: b.Author, ISBN: b.ISBN}
}

// Listing cards never force-reveal; only the public-contact flag applies.
func toListingCard(l *domain.BookListing) ListingCard {
	return ListingCard{
		ID:        l.ID,
		Book:      toBookView(l.Book),
		Owner:     toUserPublic(l.Owner, false),
		Condition: l.Condition,
		Available: l.Available,
	}
}

// Swap views force-reveal both parties' contact exactly while accepted.
func toSwapView(s *domain.SwapRequest) SwapView {
	reveal := s.Status == domain.SwapAccepted
	v := SwapView{
		ID:        s.ID,
		Status:    s.Status,
		Message:   s.Message,
		Requester: toUserPublic(s.Requester, reveal),
		CreatedAt: s.CreatedAt,
	}
	if s.Listing != nil {
		v.Listing = toListingCard(s.Listing)
		v.Owner = toUserPublic(s.Listing.Owner, reveal)
	}
	return v
}

func toImageViews(imgs []domain.BookImage) []ImageView {
	out := make([]ImageView, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, ImageView{ImageNo: img.ImageNo, Path: img.Path})
	}
	return out
}
