package service

import (
	"strings"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
	"bookswap/internal/repo"
	"bookswap/pkg/utils"
)

type BookService struct {
	books domain.BookRepository
}

func NewBookService(books domain.BookRepository) *BookService {
	return &BookService{books: books}
}

// FindOrCreate deduplicates books on the lowercased (title, author) key while
// keeping the submitted casing for display. The composite unique index is the
// real guard: a duplicate-key insert means another request won the race, so
// the winner is re-read instead of failing.
func (s *BookService) FindOrCreate(title, author, isbn string) (*domain.Book, error) {
	titleKey := utils.NormalizeKey(title)
	authorKey := utils.NormalizeKey(author)
	if titleKey == "" {
		return nil, apperr.Validation("title is required")
	}
	if authorKey == "" {
		return nil, apperr.Validation("author is required")
	}

	if b, err := s.books.FindByKey(titleKey, authorKey); err != nil {
		return nil, apperr.Internal("find book", err)
	} else if b != nil {
		return b, nil
	}

	b := &domain.Book{
		ID:        utils.NewID(),
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		TitleKey:  titleKey,
		AuthorKey: authorKey,
		ISBN:      strings.TrimSpace(isbn),
	}
	if err := s.books.Create(b); err != nil {
		if !repo.IsDupKey(err) {
			return nil, apperr.Internal("create book", err)
		}
		b, err = s.books.FindByKey(titleKey, authorKey)
		if err != nil {
			return nil, apperr.Internal("find book after conflict", err)
		}
		if b == nil {
			return nil, apperr.Internal("book vanished after conflict", nil)
		}
	}
	return b, nil
}

func (s *BookService) Get(id string) (*domain.Book, error) {
	b, err := s.books.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("find book", err)
	}
	if b == nil {
		return nil, apperr.NotFound("book not found")
	}
	return b, nil
}
