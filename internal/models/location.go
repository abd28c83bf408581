package models

import "time"

// Location is the coarse geolocation attached to an event.
type Location struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
}

// IsKnown reports whether a country was resolved.
func (l Location) IsKnown() bool {
	return l.CountryCode != "" && l.CountryCode != UnknownCountry
}

// GeoCacheEntry is the persisted form of a lookup, keyed by the IP fingerprint.
type GeoCacheEntry struct {
	Location  Location  `json:"location"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsFresh reports whether the entry is younger than ttl at now.
func (g GeoCacheEntry) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(g.FetchedAt) < ttl
}
