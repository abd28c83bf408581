package http

import (
	"net"
	"net/http"
	"strings"

	"link-rotator/internal/models"
)

const (
	headerRequestID      = "x-request-id"
	headerContentType    = "content-type"
	headerCacheControl   = "cache-control"
	headerAuthorization  = "authorization"
	headerReferrerPolicy = "referrer-policy"
	headerUserAgent      = "user-agent"
	headerReferer        = "referer"

	headerCFConnectingIP = "cf-connecting-ip"
	headerForwardedFor   = "x-forwarded-for"
	headerRealIP         = "x-real-ip"

	headerCFIPCountry  = "cf-ipcountry"
	headerCountry      = "x-country"
	headerGeoIPCountry = "x-geoip-country"

	noStoreCacheControl = "no-cache, no-store, must-revalidate"
	bearerScheme        = "bearer"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get(headerAuthorization))
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// clientIP returns the first parseable address among the proxy headers and
// the connection's remote address, in that order of trust.
func clientIP(r *http.Request) string {
	candidates := []string{
		r.Header.Get(headerCFConnectingIP),
		firstForwarded(r.Header.Get(headerForwardedFor)),
		r.Header.Get(headerRealIP),
		remoteHost(r.RemoteAddr),
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if ip := net.ParseIP(c); ip != nil {
			return ip.String()
		}
	}
	return models.UnknownIP
}

func firstForwarded(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return first
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// countryHint returns a country code set by a fronting proxy, if any.
func countryHint(r *http.Request) string {
	for _, h := range []string{headerCFIPCountry, headerCountry, headerGeoIPCountry} {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			return strings.ToUpper(v)
		}
	}
	return ""
}

func userAgent(r *http.Request) string {
	return r.Header.Get(headerUserAgent)
}

func referer(r *http.Request) string {
	return r.Header.Get(headerReferer)
}
