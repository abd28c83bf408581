package eventlogs

import (
	"bytes"
	"time"

	"link-rotator/internal/models"

	json "github.com/goccy/go-json"
)

// encodeLine serializes an event as a single newline terminated JSON line.
func encodeLine(e models.Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decodeLine parses one stored line. It reports false for blank lines,
// invalid JSON, and events whose timestamp is missing or unparseable.
func decodeLine(line []byte) (models.Event, time.Time, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return models.Event{}, time.Time{}, false
	}

	var e models.Event
	if err := json.Unmarshal(line, &e); err != nil {
		return models.Event{}, time.Time{}, false
	}
	if e.Timestamp == "" {
		return models.Event{}, time.Time{}, false
	}
	ts, err := e.Time()
	if err != nil {
		return models.Event{}, time.Time{}, false
	}
	return e, ts, true
}
