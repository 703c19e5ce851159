package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindInvalidState, KindOf(InvalidState("wrong status")))
	assert.Equal(t, KindCapacity, KindOf(Capacity("full")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Forbidden("nope"))
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.True(t, Is(err, KindForbidden))
	assert.False(t, Is(nil, KindForbidden))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad input", Validation("bad input").Error())

	cause := errors.New("disk gone")
	err := Storage("store image", cause)
	assert.Equal(t, "store image", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "internal", (&Error{}).Error())
}
