package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		err := NewValidationError("plan cannot be checked out", "free tier")
		assert.Equal(t, "validation_error: plan cannot be checked out (free tier)", err.Error())
	})

	t.Run("without details", func(t *testing.T) {
		err := NewNotFoundError("no subscription found for user")
		assert.Equal(t, "not_found: no subscription found for user", err.Error())
	})
}

func TestConstructors_TypeAndStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("no caller"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"bad request", NewBadRequestError("unparseable"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"verification", NewVerificationError("bad signature"), ErrorTypeVerification, http.StatusBadRequest},
		{"missing metadata", NewMissingMetadataError("user_id"), ErrorTypeMissingMetadata, http.StatusBadRequest},
		{"unmatched customer", NewUnmatchedCustomerError("cus_001"), ErrorTypeUnmatchedCustomer, http.StatusBadGateway},
		{"upstream", NewUpstreamError("provider down"), ErrorTypeUpstream, http.StatusBadGateway},
		{"store", NewStoreError("deadlock"), ErrorTypeStore, http.StatusInternalServerError},
		{"configuration", NewConfigurationError("no price ref"), ErrorTypeConfiguration, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("extracts through wrapping", func(t *testing.T) {
		inner := NewStoreError("connection reset")
		wrapped := fmt.Errorf("apply failed: %w", inner)

		appErr := GetAppError(wrapped)
		assert.NotNil(t, appErr)
		assert.Equal(t, ErrorTypeStore, appErr.Type)
	})

	t.Run("plain error yields nil", func(t *testing.T) {
		assert.Nil(t, GetAppError(fmt.Errorf("plain failure")))
	})
}

func TestTypePredicates(t *testing.T) {
	validation := NewValidationError("bad plan")
	notFound := NewNotFoundError("missing")

	assert.True(t, IsValidationError(validation))
	assert.False(t, IsValidationError(notFound))

	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsNotFoundError(validation))

	assert.True(t, IsUnmatchedCustomerError(NewUnmatchedCustomerError("cus_001")))
	assert.False(t, IsUnmatchedCustomerError(validation))
}
