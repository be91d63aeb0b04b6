package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCategoryValidation, CodeInvalidRequest, "bad index definition")
	assert.Equal(t, "[VALIDATION:INVALID_REQUEST] bad index definition", err.Error())

	wrapped := Wrap(ErrCategoryCatalog, CodeSaveFailed, "save failed", errors.New("disk full"))
	assert.Equal(t, "[CATALOG:SAVE_FAILED] save failed: disk full", wrapped.Error())
}

func TestError_IsMatchesCategoryAndCode(t *testing.T) {
	err := Newf(ErrCategoryValidation, CodeInvalidTarget, "bad target %q", "full(x)")

	assert.True(t, errors.Is(err, New(ErrCategoryValidation, CodeInvalidTarget, "")))
	assert.False(t, errors.Is(err, New(ErrCategoryValidation, CodeInvalidRequest, "")))
	assert.False(t, errors.Is(err, New(ErrCategorySchema, CodeInvalidTarget, "")))
}

func TestError_UnwrapChain(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("outer: %w", Wrap(ErrCategoryCatalog, CodeLoadFailed, "load", cause))

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCategoryCatalog, GetCategory(err))
	assert.Equal(t, CodeLoadFailed, GetCode(err))
}

func TestGetCategoryAndCode_NonTesseraError(t *testing.T) {
	err := errors.New("plain")
	assert.Equal(t, ErrorCategory(""), GetCategory(err))
	assert.Equal(t, "", GetCode(err))
}
