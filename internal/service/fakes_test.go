package service

import (
	"errors"
	"io"
	"sort"
	"time"

	"bookswap/internal/domain"
)

// errDup mimics the driver's duplicate-key error text.
var errDup = errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'uq_books_title_author'")

// In-memory repository fakes. They mirror the gorm implementations' contract:
// lookups return (nil, nil) when nothing matches, list methods return newest
// first.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(u *domain.User) error {
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(q string, offset, limit int, withBanned bool) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.DeletedAt.Valid && !withBanned {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(u *domain.User) error {
	u.UpdatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SoftDelete(id string) error {
	if u, ok := f.users[id]; ok {
		u.DeletedAt.Time = time.Now()
		u.DeletedAt.Valid = true
	}
	return nil
}

type fakeBookRepo struct {
	books    map[string]*domain.Book
	dupErr   error // returned once on the next Create when set
	hideOnce bool  // makes the next FindByKey miss, to stage insert races
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*domain.Book{}}
}

func (f *fakeBookRepo) Create(b *domain.Book) error {
	if f.dupErr != nil {
		err := f.dupErr
		f.dupErr = nil
		return err
	}
	for _, other := range f.books {
		if other.TitleKey == b.TitleKey && other.AuthorKey == b.AuthorKey {
			return errDup
		}
	}
	cp := *b
	f.books[b.ID] = &cp
	return nil
}

func (f *fakeBookRepo) FindByID(id string) (*domain.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) FindByKey(titleKey, authorKey string) (*domain.Book, error) {
	if f.hideOnce {
		f.hideOnce = false
		return nil, nil
	}
	for _, b := range f.books {
		if b.TitleKey == titleKey && b.AuthorKey == authorKey {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeListingRepo struct {
	listings []*domain.BookListing
	books    *fakeBookRepo // when set, FindByID and friends preload Book
	users    *fakeUserRepo // when set, they preload Owner
}

func (f *fakeListingRepo) preload(l *domain.BookListing) domain.BookListing {
	cp := *l
	if f.books != nil {
		cp.Book, _ = f.books.FindByID(l.BookID)
	}
	if f.users != nil {
		cp.Owner, _ = f.users.FindByID(l.OwnerID)
	}
	return cp
}

func (f *fakeListingRepo) Create(l *domain.BookListing) error {
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	cp := *l
	f.listings = append(f.listings, &cp)
	return nil
}

func (f *fakeListingRepo) FindByID(id string) (*domain.BookListing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			cp := f.preload(l)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeListingRepo) FindAvailable() ([]domain.BookListing, error) {
	var out []domain.BookListing
	for i := len(f.listings) - 1; i >= 0; i-- {
		if f.listings[i].Available {
			out = append(out, f.preload(f.listings[i]))
		}
	}
	return out, nil
}

func (f *fakeListingRepo) FindByOwner(ownerID string) ([]domain.BookListing, error) {
	var out []domain.BookListing
	for i := len(f.listings) - 1; i >= 0; i-- {
		if f.listings[i].OwnerID == ownerID {
			out = append(out, f.preload(f.listings[i]))
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(l *domain.BookListing) error {
	for i, old := range f.listings {
		if old.ID == l.ID {
			l.UpdatedAt = time.Now()
			cp := *l
			f.listings[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeListingRepo) Delete(id string) error {
	for i, l := range f.listings {
		if l.ID == id {
			f.listings = append(f.listings[:i], f.listings[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeImageRepo struct {
	images    []*domain.BookImage
	createErr error // returned once on the next Create when set
}

func (f *fakeImageRepo) Create(img *domain.BookImage) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	cp := *img
	f.images = append(f.images, &cp)
	return nil
}

func (f *fakeImageRepo) Find(listingID string, imageNo int) (*domain.BookImage, error) {
	for _, img := range f.images {
		if img.ListingID == listingID && img.ImageNo == imageNo {
			cp := *img
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeImageRepo) FindByListing(listingID string) ([]domain.BookImage, error) {
	var out []domain.BookImage
	for _, img := range f.images {
		if img.ListingID == listingID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImageNo < out[j].ImageNo })
	return out, nil
}

func (f *fakeImageRepo) CountByListing(listingID string) (int64, error) {
	var n int64
	for _, img := range f.images {
		if img.ListingID == listingID {
			n++
		}
	}
	return n, nil
}

func (f *fakeImageRepo) Delete(listingID string, imageNo int) error {
	for i, img := range f.images {
		if img.ListingID == listingID && img.ImageNo == imageNo {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeImageRepo) DeleteByListing(listingID string) error {
	kept := f.images[:0]
	for _, img := range f.images {
		if img.ListingID != listingID {
			kept = append(kept, img)
		}
	}
	f.images = kept
	return nil
}

type fakeRatingRepo struct {
	ratings []*domain.Rating
}

func (f *fakeRatingRepo) Find(userID, bookID string) (*domain.Rating, error) {
	for _, r := range f.ratings {
		if r.UserID == userID && r.BookID == bookID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) FindByBook(bookID string) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, r := range f.ratings {
		if r.BookID == bookID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) Save(r *domain.Rating) error {
	for i, old := range f.ratings {
		if old.UserID == r.UserID && old.BookID == r.BookID {
			cp := *r
			f.ratings[i] = &cp
			return nil
		}
	}
	cp := *r
	f.ratings = append(f.ratings, &cp)
	return nil
}

type fakeSwapRepo struct {
	swaps    []*domain.SwapRequest
	listings *fakeListingRepo
	users    *fakeUserRepo
}

func (f *fakeSwapRepo) Create(s *domain.SwapRequest) error {
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	cp := *s
	cp.Listing, cp.Requester = nil, nil
	f.swaps = append(f.swaps, &cp)
	return nil
}

func (f *fakeSwapRepo) FindByID(id string) (*domain.SwapRequest, error) {
	for _, s := range f.swaps {
		if s.ID == id {
			return f.preload(s), nil
		}
	}
	return nil, nil
}

func (f *fakeSwapRepo) FindByOwner(ownerID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	for i := len(f.swaps) - 1; i >= 0; i-- {
		s := f.preload(f.swaps[i])
		if s.Listing != nil && s.Listing.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSwapRepo) FindByRequester(requesterID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	for i := len(f.swaps) - 1; i >= 0; i-- {
		if f.swaps[i].RequesterID == requesterID {
			out = append(out, *f.preload(f.swaps[i]))
		}
	}
	return out, nil
}

func (f *fakeSwapRepo) Update(s *domain.SwapRequest) error {
	for i, old := range f.swaps {
		if old.ID == s.ID {
			s.UpdatedAt = time.Now()
			cp := *s
			cp.Listing, cp.Requester = nil, nil
			f.swaps[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeSwapRepo) preload(s *domain.SwapRequest) *domain.SwapRequest {
	cp := *s
	if f.listings != nil {
		cp.Listing, _ = f.listings.FindByID(s.ListingID)
		if cp.Listing != nil && f.users != nil {
			cp.Listing.Owner, _ = f.users.FindByID(cp.Listing.OwnerID)
		}
	}
	if f.users != nil {
		cp.Requester, _ = f.users.FindByID(s.RequesterID)
	}
	return &cp
}

// memStore is an in-memory FileStore recording saved and removed paths.
type memStore struct {
	files   map[string][]byte
	saveErr error
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (m *memStore) Save(publicPath string, r io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[publicPath] = data
	return nil
}

func (m *memStore) Remove(publicPath string) error {
	delete(m.files, publicPath)
	return nil
}
