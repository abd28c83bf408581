package aggregators

import (
	"time"

	"link-rotator/internal/classifiers"
	"link-rotator/internal/models"
	"link-rotator/internal/shared/fingerprints"
)

const DefaultRecentSampleSize = 10

// Aggregator folds a window of events into grouped counts in a single pass.
//
//go:generate mockgen -source=aggregator.go -destination=./mocks/aggregator_mock.go -package=mocks
type Aggregator interface {
	Aggregate(events []models.Event) *models.AggregateResult
}

type aggregator struct {
	location     *time.Location
	recentSample int
}

// NewAggregator buckets hours in loc and keeps recentSample events as the recent view.
func NewAggregator(loc *time.Location, recentSample int) Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if recentSample <= 0 {
		recentSample = DefaultRecentSampleSize
	}
	return &aggregator{location: loc, recentSample: recentSample}
}

func (a *aggregator) Aggregate(events []models.Event) *models.AggregateResult {
	var (
		urls       = newOrderedCounter()
		countries  = newOrderedCounter()
		cities     = newOrderedCounter()
		hours      = newOrderedCounter()
		browsers   = newOrderedCounter()
		devices    = newOrderedCounter()
		oses       = newOrderedCounter()
		uaFamilies = newOrderedCounter()
		visitors   = make(map[string]struct{})
		recent     = newRecentSample(a.recentSample)
	)

	for _, e := range events {
		urls.inc(e.URLOrUnknown())
		countries.inc(e.CountryOrUnknown())
		if e.City != "" {
			cities.inc(e.City)
		}
		ts, err := e.Time()
		if err == nil {
			hours.inc(models.HourBucket(ts, a.location))
		} else {
			ts = time.Time{}
		}
		recent.offer(e, ts)

		c := classifiers.Classify(e.UserAgent)
		browsers.inc(string(c.Browser))
		devices.inc(string(c.Device))
		if c.OS != classifiers.OSUnknown {
			oses.inc(string(c.OS))
		}
		if e.UserAgent != "" {
			uaFamilies.inc(classifiers.Family(e.UserAgent))
		}

		if e.IP != "" {
			visitors[fingerprints.IP(e.IP)] = struct{}{}
		}
	}

	return &models.AggregateResult{
		TotalEvents:     int64(len(events)),
		UniqueVisitors:  int64(len(visitors)),
		UniqueCountries: int64(countries.len()),
		URLs:            urls.byCountDesc(),
		Countries:       countries.byCountDesc(),
		Cities:          cities.byCountDesc(),
		Hours:           hours.byKeyAsc(),
		Browsers:        browsers.byCountDesc(),
		Devices:         devices.byCountDesc(),
		OS:              oses.byCountDesc(),
		UAFamilies:      uaFamilies.byCountDesc(),
		Recent:          recent.newestFirst(),
	}
}

// recentSample keeps the size events with the latest timestamps, newest
// first. Input order decides ties, later wins. Events without a parseable
// timestamp rank as oldest.
type recentSample struct {
	size    int
	entries []recentEntry
	seq     int
}

type recentEntry struct {
	event models.Event
	at    time.Time
	seq   int
}

func newRecentSample(size int) *recentSample {
	return &recentSample{size: size, entries: make([]recentEntry, 0, size)}
}

func (r *recentSample) offer(e models.Event, at time.Time) {
	entry := recentEntry{event: e, at: at, seq: r.seq}
	r.seq++

	pos := len(r.entries)
	for pos > 0 && entry.newerThan(r.entries[pos-1]) {
		pos--
	}
	if pos >= r.size {
		return
	}
	if len(r.entries) < r.size {
		r.entries = append(r.entries, recentEntry{})
	}
	copy(r.entries[pos+1:], r.entries[pos:len(r.entries)-1])
	r.entries[pos] = entry
}

func (e recentEntry) newerThan(other recentEntry) bool {
	if !e.at.Equal(other.at) {
		return e.at.After(other.at)
	}
	return e.seq > other.seq
}

func (r *recentSample) newestFirst() []models.Event {
	out := make([]models.Event, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.event
	}
	return out
}
