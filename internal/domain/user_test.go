package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContact(t *testing.T) {
	base := User{
		PreferredMethod: ContactEmail,
		ContactEmail:    "reader@example.com",
		ContactPhone:    "+15550001111",
	}

	t.Run("private stays hidden", func(t *testing.T) {
		u := base
		u.PublicContact = false
		assert.Empty(t, ResolveContact(&u, false))
	})

	t.Run("public shows preferred method", func(t *testing.T) {
		u := base
		u.PublicContact = true
		assert.Equal(t, "reader@example.com", ResolveContact(&u, false))

		u.PreferredMethod = ContactPhone
		assert.Equal(t, "+15550001111", ResolveContact(&u, false))
	})

	t.Run("force reveal overrides the flag", func(t *testing.T) {
		u := base
		u.PublicContact = false
		assert.Equal(t, "reader@example.com", ResolveContact(&u, true))
	})

	t.Run("no preferred method reveals nothing", func(t *testing.T) {
		u := base
		u.PublicContact = true
		u.PreferredMethod = ContactNone
		assert.Empty(t, ResolveContact(&u, false))
		assert.Empty(t, ResolveContact(&u, true))
	})
}
