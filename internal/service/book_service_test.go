package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookswap/internal/apperr"
)

func TestFindOrCreateDedup(t *testing.T) {
	books := newFakeBookRepo()
	svc := NewBookService(books)

	first, err := svc.FindOrCreate("The Hobbit", "J.R.R. Tolkien", "9780261103344")
	require.NoError(t, err)

	// Case and whitespace variants hit the same row.
	variants := [][2]string{
		{"the hobbit", "j.r.r. tolkien"},
		{"THE HOBBIT", "J.R.R. TOLKIEN"},
		{"  The Hobbit  ", " J.R.R. Tolkien "},
	}
	for _, v := range variants {
		b, err := svc.FindOrCreate(v[0], v[1], "")
		require.NoError(t, err)
		assert.Equal(t, first.ID, b.ID, "variant %q/%q", v[0], v[1])
	}

	// Display casing comes from the first submitter.
	assert.Equal(t, "The Hobbit", first.Title)
	assert.Equal(t, "J.R.R. Tolkien", first.Author)
	assert.Len(t, books.books, 1)
}

func TestFindOrCreateDistinctAuthors(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	a, err := svc.FindOrCreate("Collected Poems", "Plath", "")
	require.NoError(t, err)
	b, err := svc.FindOrCreate("Collected Poems", "Auden", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFindOrCreateValidation(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	_, err := svc.FindOrCreate("   ", "someone", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.FindOrCreate("something", "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestFindOrCreateLosesInsertRace(t *testing.T) {
	books := newFakeBookRepo()
	svc := NewBookService(books)

	// Another request inserts the row between our lookup and insert; the
	// duplicate-key error must resolve to the winner instead of failing.
	winner, err := svc.FindOrCreate("Neuromancer", "Gibson", "")
	require.NoError(t, err)

	books.hideOnce = true
	b, err := svc.FindOrCreate("neuromancer", "gibson", "")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, b.ID)
}

func TestBookGet(t *testing.T) {
	books := newFakeBookRepo()
	svc := NewBookService(books)

	created, err := svc.FindOrCreate("Solaris", "Lem", "")
	require.NoError(t, err)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solaris", got.Title)

	_, err = svc.Get("ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
