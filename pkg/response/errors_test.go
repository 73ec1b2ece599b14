package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBusinessError(
		WithErrorCode(StoreUnavailable),
		WithErrorMessage("收藏存储不可用"),
		WithError(cause),
	)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "收藏存储不可用: connection refused", err.Error())

	wrapped := fmt.Errorf("add favorite: %w", err)
	assert.True(t, HasCode(wrapped, StoreUnavailable))
	assert.False(t, HasCode(wrapped, NotFound))

	be := AsBusinessError(wrapped)
	require.NotNil(t, be)
	assert.Equal(t, StoreUnavailable, be.Code)
}

func TestAsBusinessError_PlainError(t *testing.T) {
	assert.Nil(t, AsBusinessError(nil))

	be := AsBusinessError(errors.New("boom"))
	require.NotNil(t, be)
	assert.Equal(t, Fail, be.Code)
	assert.Equal(t, "boom", be.Msg)
}

func TestResponseCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ResponseCode
		want int
	}{
		{ValidationFailed, http.StatusBadRequest},
		{GitHubScopeMissing, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{NotAuthorized, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{StoreUnavailable, http.StatusServiceUnavailable},
		{IndexRemovalFailed, http.StatusMultiStatus},
		{TransactionFailed, http.StatusInternalServerError},
		{Fail, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %d", tt.code)
	}
}

func TestCustomResponse(t *testing.T) {
	r := CustomResponse(WithData([]int{}), WithWarning("degraded"))
	assert.Equal(t, Success, r.Code)
	assert.Equal(t, "success", r.Message)
	assert.Equal(t, "degraded", r.Warning)
}
