package aggregators

import (
	"fmt"

	"link-rotator/internal/shared/svcerrors"
)

const (
	codeInternalEventLogReadFailed = "STA_9000"
	codeInternalEventLogTailFailed = "STA_9001"
)

// errInternalEventLogReadFailed returns an error when scanning the event log fails.
func errInternalEventLogReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventLogReadFailed, fmt.Errorf("eventLogReadFailed: %w", cause))
}

// errInternalEventLogTailFailed returns an error when reading the tail of the live segment fails.
func errInternalEventLogTailFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventLogTailFailed, fmt.Errorf("eventLogTailFailed: %w", cause))
}
