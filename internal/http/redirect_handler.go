package http

import (
	"net/http"

	"link-rotator/internal/rotators"
	"link-rotator/internal/shared/loggers"
)

type redirectHandler struct {
	redirectService rotators.RedirectService
}

func NewRedirectHandler(redirectService rotators.RedirectService) AppHttpHandler {
	return &redirectHandler{
		redirectService: redirectService,
	}
}

// Handle answers any method on / with a 302 to a randomly picked destination.
func (h *redirectHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	visitor := rotators.Visitor{
		IP:          clientIP(r),
		UserAgent:   userAgent(r),
		Referer:     referer(r),
		CountryHint: countryHint(r),
	}

	decision, err := h.redirectService.Redirect(r.Context(), visitor)
	if err != nil {
		return err
	}

	if appWriter, ok := appWriterOf(w); ok {
		appWriter.SetRedirectTarget(decision.URL)
	}
	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldTargetURL, decision.URL).
		Str(loggers.FieldClientIP, visitor.IP).
		Str(loggers.FieldCountryCode, decision.Event.Country).
		Bool("fallback", decision.UsedFallback).
		Msg("redirecting")

	// Keep the rotator's own URL out of the destination's referer.
	w.Header().Set(headerReferrerPolicy, "no-referrer")
	w.Header().Set(headerCacheControl, noStoreCacheControl)
	http.Redirect(w, r, decision.URL, http.StatusFound)
	return nil
}
