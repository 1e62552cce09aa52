package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSample = New(KindConflict, "sample_conflict", "sample conflict")

func TestWithfKeepsCodeForErrorsIs(t *testing.T) {
	detailed := errSample.Withf("sample conflict on %s", "row-1")

	assert.True(t, errors.Is(detailed, errSample))
	assert.Equal(t, "sample conflict on row-1", detailed.Message())
	assert.Equal(t, KindConflict, detailed.Kind())
}

func TestIsDoesNotMatchDifferentCodes(t *testing.T) {
	other := New(KindConflict, "other_conflict", "other")
	assert.False(t, errors.Is(other, errSample))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(fmt.Errorf("find wallet: %w", cause))

	require.NotNil(t, err)
	assert.Equal(t, KindInternal, err.Kind())
	assert.Equal(t, CodeInternal, err.Code())
	assert.Equal(t, "internal server error", err.Message())
	assert.ErrorIs(t, err, cause)
}

func TestInternalKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("tx: %w", errSample)
	assert.Same(t, errSample, Internal(wrapped))
	assert.Nil(t, Internal(nil))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))
	assert.Equal(t, KindInternal, From(errors.New("boom")).Kind())
	assert.Equal(t, "sample_conflict", From(fmt.Errorf("wrap: %w", errSample)).Code())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:            http.StatusBadRequest,
		KindInvalidState:          http.StatusBadRequest,
		KindInsufficientResources: http.StatusBadRequest,
		KindNotFound:              http.StatusNotFound,
		KindConflict:              http.StatusConflict,
		KindInternal:              http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields("validation failed", map[string]string{"amount": "This field is required"})
	assert.Equal(t, KindValidation, err.Kind())
	assert.Equal(t, "This field is required", err.Fields()["amount"])
	assert.Nil(t, Validation("plain").Fields())
}
