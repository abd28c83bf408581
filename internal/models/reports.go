package models

import "time"

// StatsReport is the full aggregate served for format=json.
type StatsReport struct {
	Success     bool      `json:"success"`
	Period      Period    `json:"period"`
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
}

type Stats struct {
	TotalClicks        int64      `json:"total_clicks"`
	UniqueIPs          int64      `json:"unique_ips"`
	UniqueCountries    int64      `json:"unique_countries"`
	TopURLs            CountGroup `json:"top_urls"`
	TopCountries       CountGroup `json:"top_countries"`
	TopCities          CountGroup `json:"top_cities"`
	Browsers           CountGroup `json:"browsers"`
	Devices            CountGroup `json:"devices"`
	OS                 CountGroup `json:"os"`
	HourlyDistribution CountGroup `json:"hourly_distribution"`
	UAFamilies         CountGroup `json:"ua_families"`
	RecentEvents       []Event    `json:"recent_events"`
}

// NewStats flattens an aggregate into its wire form.
func NewStats(r *AggregateResult) Stats {
	recent := r.Recent
	if recent == nil {
		recent = []Event{}
	}
	return Stats{
		TotalClicks:        r.TotalEvents,
		UniqueIPs:          r.UniqueVisitors,
		UniqueCountries:    r.UniqueCountries,
		TopURLs:            r.URLs,
		TopCountries:       r.Countries,
		TopCities:          r.Cities,
		Browsers:           r.Browsers,
		Devices:            r.Devices,
		OS:                 r.OS,
		HourlyDistribution: r.Hours,
		UAFamilies:         r.UAFamilies,
		RecentEvents:       recent,
	}
}

// SummaryReport is served for format=summary.
type SummaryReport struct {
	Success     bool    `json:"success"`
	Period      Period  `json:"period"`
	TotalClicks int64   `json:"total_clicks"`
	TopURL      *string `json:"top_url"`
	TopCountry  *string `json:"top_country"`
}

// RecentLogsReport is served for format=logs.
type RecentLogsReport struct {
	Success     bool        `json:"success"`
	GeneratedAt time.Time   `json:"generated_at"`
	Count       int         `json:"count"`
	Logs        []RecentLog `json:"logs"`
}

// RecentLog is an event decorated with its user agent classification.
type RecentLog struct {
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	IP        string `json:"ip"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Referer   string `json:"referer"`
	Device    string `json:"device"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
}
