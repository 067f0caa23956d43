package errors

import "net/http"

// Billing-specific error types
const (
	ErrorTypeVerification      ErrorType = "verification_error"
	ErrorTypeMissingMetadata   ErrorType = "missing_metadata"
	ErrorTypeUnmatchedCustomer ErrorType = "unmatched_customer"
	ErrorTypeUpstream          ErrorType = "upstream_error"
	ErrorTypeStore             ErrorType = "store_error"
	ErrorTypeConfiguration     ErrorType = "configuration_error"
)

// NewVerificationError creates an error for webhook payloads that fail
// signature verification. The payload must never be parsed or applied.
func NewVerificationError(details ...string) *AppError {
	return newAppError(ErrorTypeVerification, http.StatusBadRequest,
		"webhook signature verification failed", details)
}

// NewMissingMetadataError creates an error for events that cannot be
// attributed to a user because required metadata is absent.
func NewMissingMetadataError(details ...string) *AppError {
	return newAppError(ErrorTypeMissingMetadata, http.StatusBadRequest,
		"event metadata is missing required fields", details)
}

// NewUnmatchedCustomerError creates an error for events whose customer
// reference matches no stored subscription. This indicates a missed
// checkout event or provider/store drift; the 502 code makes the
// provider redeliver later, by which time the checkout event may have landed.
func NewUnmatchedCustomerError(customerRef string) *AppError {
	return newAppError(ErrorTypeUnmatchedCustomer, http.StatusBadGateway,
		"no subscription matches billing customer reference", []string{customerRef})
}

// NewUpstreamError creates an error for failures reported by the billing
// provider itself.
func NewUpstreamError(details ...string) *AppError {
	return newAppError(ErrorTypeUpstream, http.StatusBadGateway,
		"billing provider request failed", details)
}

// NewStoreError creates an error for transient persistence failures. The
// webhook caller receives a 5xx so the provider retries delivery.
func NewStoreError(details ...string) *AppError {
	return newAppError(ErrorTypeStore, http.StatusInternalServerError,
		"subscription store operation failed", details)
}

// NewConfigurationError creates an error for server-side misconfiguration,
// such as a plan with no configured price reference.
func NewConfigurationError(details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, http.StatusInternalServerError,
		"billing configuration error, contact support", details)
}

// IsVerificationError checks if the error is a verification error
func IsVerificationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeVerification
}

// IsMissingMetadataError checks if the error is a missing metadata error
func IsMissingMetadataError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeMissingMetadata
}

// IsUnmatchedCustomerError checks if the error is an unmatched customer error
func IsUnmatchedCustomerError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeUnmatchedCustomer
}

// IsUpstreamError checks if the error is an upstream billing provider error
func IsUpstreamError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeUpstream
}

// IsStoreError checks if the error is a store error
func IsStoreError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeStore
}
