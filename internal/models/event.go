package models

import "time"

const (
	// UnknownCountry is recorded when no geolocation source produced a country.
	UnknownCountry = "XX"
	// UnknownURL groups events whose url field is missing.
	UnknownURL = "unknown"
	// UnknownIP is used when no request header or peer address yields a valid IP.
	UnknownIP = "0.0.0.0"
)

// Event is one redirection, stored as a single JSON line in the event log.
//
// Example JSON:
//
//	{
//	  "timestamp": "2025-12-28T18:03:45+01:00",
//	  "url": "https://example.com/landing",
//	  "ip": "203.0.113.7",
//	  "user_agent": "Mozilla/5.0 (Linux; Android 10) AppleWebKit Chrome/90 Mobile Safari",
//	  "referer": "https://t.co/abc",
//	  "country": "FR",
//	  "city": "Paris"
//	}
type Event struct {
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	Country   string `json:"country"`
	City      string `json:"city"`
}

// NewEvent stamps an event at the given instant.
func NewEvent(at time.Time, url, ip, userAgent, referer string, loc Location) Event {
	country := loc.CountryCode
	if country == "" {
		country = UnknownCountry
	}
	return Event{
		Timestamp: at.Format(time.RFC3339),
		URL:       url,
		IP:        ip,
		UserAgent: userAgent,
		Referer:   referer,
		Country:   country,
		City:      loc.City,
	}
}

// Time parses the stored timestamp.
func (e Event) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, e.Timestamp)
}

// URLOrUnknown is the grouping key for the url dimension.
func (e Event) URLOrUnknown() string {
	if e.URL == "" {
		return UnknownURL
	}
	return e.URL
}

// CountryOrUnknown is the grouping key for the country dimension.
func (e Event) CountryOrUnknown() string {
	if e.Country == "" {
		return UnknownCountry
	}
	return e.Country
}
