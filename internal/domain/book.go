package domain

import "time"

// Book is shared across listings and ratings; one row per (title, author).
// Title/Author keep the casing of the first submitter, TitleKey/AuthorKey are
// the trimmed lowercased dedup key backed by a composite unique index.
type Book struct {
	ID        string `gorm:"primaryKey;size:32"`
	Title     string `gorm:"size:200;not null"`
	Author    string `gorm:"size:120;not null"`
	TitleKey  string `gorm:"size:200;not null;uniqueIndex:uq_books_title_author"`
	AuthorKey string `gorm:"size:120;not null;uniqueIndex:uq_books_title_author"`
	ISBN      string `gorm:"size:13"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Book) TableName() string { return "books" }

type BookRepository interface {
	Create(b *Book) error
	FindByID(id string) (*Book, error)
	FindByKey(titleKey, authorKey string) (*Book, error)
}
