package updaters

import (
	"fmt"

	"link-rotator/internal/shared/svcerrors"
)

// UpdateService errors
const (
	codeValidationFailed = "UPD_1000"
	codeNoValidURL       = "UPD_1001"
	codeUnauthenticated  = "UPD_1100"
	codeMethodNotAllowed = "UPD_1200"
	codeRateLimited      = "UPD_1300"

	codeInternalURLSetStoreFailed = "UPD_9000"
)

// errValidationFailed returns an error for malformed request bodies.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errNoValidURL carries the rejected entries so the caller can fix them.
func errNoValidURL(invalid []InvalidURL) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeNoValidURL, "no valid URL provided", nil).
		WithDetails(map[string]any{"invalid_urls": invalid})
}

// errUnauthenticated never says which part of the credential was wrong.
func errUnauthenticated() *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeUnauthenticated, "invalid or missing token")
}

func errMethodNotAllowed(method string) *svcerrors.ServiceError {
	return svcerrors.NewMethodNotAllowedError(codeMethodNotAllowed, fmt.Sprintf("method %s not allowed, use POST", method))
}

func errRateLimited() *svcerrors.ServiceError {
	return svcerrors.NewRateLimitedError(codeRateLimited, "too many requests, retry in a few seconds")
}

// errInternalURLSetStoreFailed returns an error when the url set cannot be persisted.
func errInternalURLSetStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalURLSetStoreFailed, fmt.Errorf("urlSetStoreFailed: %w", cause))
}
