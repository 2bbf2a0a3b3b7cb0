package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("Rice purchase", "abc")

	assert.Equal(t, "Rice purchase not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "abc", err.Details["id"])
	assert.True(t, IsNotFound(err))
}

func TestNewNotFound_NoID(t *testing.T) {
	err := NewNotFound("Mill", "")
	assert.Nil(t, err.Details)
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewForbidden("no access"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, appErr.Code)
	assert.Equal(t, http.StatusForbidden, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatus_Plain(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(fmt.Errorf("boom")))
	assert.False(t, IsNotFound(fmt.Errorf("boom")))
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("invalid sortBy").WithDetail("sortBy", "foo").WithDetail("allowed", []string{"date"})
	assert.Len(t, err.Details, 2)
	assert.Contains(t, err.Error(), CodeValidation)
}
