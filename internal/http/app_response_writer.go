package http

import (
	"net/http"

	"link-rotator/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter is a wrapper around the http.ResponseWriter that stores app details for middleware access
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
	// redirectTarget is the destination chosen by the redirect handler.
	redirectTarget string
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

func (w *appResponseWriter) SetRedirectTarget(target string) {
	w.redirectTarget = target
}

func (w *appResponseWriter) RedirectTarget() string {
	return w.redirectTarget
}

// appWriterOf finds the appResponseWriter beneath wrappers such as the gzip writer.
func appWriterOf(w http.ResponseWriter) (*appResponseWriter, bool) {
	for {
		if appWriter, ok := w.(*appResponseWriter); ok {
			return appWriter, true
		}
		unwrapper, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return nil, false
		}
		w = unwrapper.Unwrap()
	}
}

// statusOf returns the written status, or 200 when nothing was written yet.
func statusOf(w http.ResponseWriter) int {
	if appWriter, ok := w.(*appResponseWriter); ok && appWriter.Status() != 0 {
		return appWriter.Status()
	}
	return http.StatusOK
}
