package http

import (
	"fmt"
	"html"
	"net/http"

	"link-rotator/internal/shared/loggers"
	"link-rotator/internal/shared/svcerrors"

	"github.com/goccy/go-json"
)

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	RequestID        string `json:"requestId"`
	ErrorCategory    string `json:"errorCategory"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
	Details          any    `json:"details,omitempty"`
}

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type errorWriter func(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError)

// errorHandlingAdapter renders handler errors as JSON ErrorResponse bodies.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return adapt(httpHandler, writeErrorResponse)
}

// htmlErrorHandlingAdapter renders handler errors as a minimal HTML page for
// routes browsers land on directly.
func htmlErrorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return adapt(httpHandler, writeHTMLErrorResponse)
}

func adapt(httpHandler AppHttpHandler, write errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}

		// Log internal errors at error level
		if svcErr.IsInternalError() {
			loggers.Ctx(r.Context()).Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("internal error in handler")
		}

		write(w, r, svcErr)
	}
}

func logErrorResponse(r *http.Request, svcErr *svcerrors.ServiceError) {
	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Str("errorCategory", svcErr.Category).
		Str("errorMessage", svcErr.Message).
		Int("httpStatusCode", svcErr.HttpStatusCode).
		Msg("error response")
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	// set serviceError for middlewares
	if appWriter, ok := appWriterOf(w); ok {
		appWriter.SetServiceError(svcErr)
	}
	logErrorResponse(r, svcErr)

	errorResponse := ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
		Details:          svcErr.Details,
	}
	writeJSON(w, svcErr.HttpStatusCode, errorResponse)
}

const htmlErrorPage = `<!DOCTYPE html><html><head><title>%[1]s</title></head>` +
	`<body style="font-family:sans-serif;text-align:center;padding:50px;">` +
	`<h1>%[1]s</h1><p>Please try again later.</p></body></html>`

func writeHTMLErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	if appWriter, ok := appWriterOf(w); ok {
		appWriter.SetServiceError(svcErr)
	}
	logErrorResponse(r, svcErr)

	title := "Service temporarily unavailable"
	if svcErr.HttpStatusCode != http.StatusServiceUnavailable {
		title = http.StatusText(svcErr.HttpStatusCode)
	}

	w.Header().Set(headerContentType, "text/html; charset=utf-8")
	w.Header().Set(headerCacheControl, noStoreCacheControl)
	w.WriteHeader(svcErr.HttpStatusCode)
	_, _ = fmt.Fprintf(w, htmlErrorPage, html.EscapeString(title))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(headerContentType, "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
