package models

import "time"

// ActiveURLSet is the destination list the rotator picks from.
//
// Example JSON:
//
//	{
//	  "urls": ["https://example.com", "https://example.com/blog"],
//	  "updated_at": "2025-12-28T18:03:45Z",
//	  "updated_from": "198.51.100.4"
//	}
type ActiveURLSet struct {
	URLs        []string  `json:"urls"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedFrom string    `json:"updated_from"`
}

// IsEmpty reports whether the set has no usable destination.
func (s *ActiveURLSet) IsEmpty() bool {
	return s == nil || len(s.URLs) == 0
}
