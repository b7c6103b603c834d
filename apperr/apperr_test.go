package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(CodeStorage))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeExport))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("UNKNOWN")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeStorage, cause, "failed to store image blob")

	assert.Equal(t, "failed to store image blob: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStorage, CodeOf(err))
}

func TestCodeOfThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "product p1 not found")
	outer := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, CodeNotFound, CodeOf(outer))

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, "product p1 not found", typed.Message())
}

func TestCodeOfUntyped(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
