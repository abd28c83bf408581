package events

import (
	"time"

	"link-rotator/internal/models"
)

// RedirectRecordedEvent carries one redirect event from the request path to
// the event log writers when the sink runs in async mode.
//
// Example JSON:
//
//	{
//	  "requestId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "enqueuedAt": "2025-12-28T18:03:45.120Z",
//	  "event": {
//	    "timestamp": "2025-12-28T19:03:45+01:00",
//	    "url": "https://example.com/landing",
//	    "ip": "203.0.113.7",
//	    "user_agent": "Mozilla/5.0 ...",
//	    "referer": "",
//	    "country": "FR",
//	    "city": "Paris"
//	  }
//	}
//
// The request ID ties the append back to the redirect's request log line.
type RedirectRecordedEvent struct {
	RequestID  string       `json:"requestId"`
	EnqueuedAt time.Time    `json:"enqueuedAt"`
	Event      models.Event `json:"event"`
}

// PartitionKey keeps one visitor's events on a single writer lane.
func (e RedirectRecordedEvent) PartitionKey() string {
	return e.Event.IP
}
