package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("bad input", "fix it")
	assert.Equal(t, "bad input", err.Error())
	assert.True(t, IsUserError(err))
	assert.False(t, IsSystemError(err))
}

func TestUserErrorWithField(t *testing.T) {
	err := NewUserErrorWithField("quantity", "-1", "invalid quantity", "use a positive number")
	assert.Equal(t, "invalid quantity: '-1'", err.Error())
}

func TestSystemErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk exploded")
	err := NewSystemErrorWithOp("insert", "database write failed", cause)
	assert.Equal(t, "database write failed during insert", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, IsSystemError(err))
}

func TestWrappedCategoryDetection(t *testing.T) {
	ue := NewUserError("bad", "fix")
	wrapped := Wrap(ue, "while adding item")
	assert.True(t, IsUserError(wrapped))

	got, ok := AsUserError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "fix", got.Suggestion)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestGetSuggestion(t *testing.T) {
	assert.Equal(t, "", GetSuggestion(nil))

	s := GetSuggestion(ErrItemNotFound)
	assert.Contains(t, s, "groclist list")

	// Wrapped sentinels still match
	s = GetSuggestion(Wrap(ErrInvalidScheduleTime, "scheduling reminder"))
	assert.Contains(t, s, "future")

	// UserError suggestion passes through
	s = GetSuggestion(NewUserError("bad", "do the thing"))
	assert.Equal(t, "do the thing", s)
}

func TestGetCategorySuggestion(t *testing.T) {
	assert.Contains(t, GetCategorySuggestion(NewUserError("x", "")), "your input")
	assert.Contains(t, GetCategorySuggestion(NewSystemError("x", nil)), "system error")
	assert.Equal(t, "", GetCategorySuggestion(fmt.Errorf("plain")))
}
