package rotators

import (
	"fmt"

	"link-rotator/internal/shared/svcerrors"
)

const (
	codeNoDestinationAvailable = "RED_2000"

	codeInternalPickFailed = "RED_9000"
)

// errNoDestinationAvailable is returned when neither the active set nor the fallback has a URL.
func errNoDestinationAvailable() *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeNoDestinationAvailable, "no destination URL available", nil)
}

// errInternalPickFailed returns an error when the picker rejects the candidate set.
func errInternalPickFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPickFailed, fmt.Errorf("pickFailed: %w", cause))
}
