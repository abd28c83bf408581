package models

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// CountEntry is one key of a grouped count.
type CountEntry struct {
	Key   string
	Count int64
}

// CountGroup is an ordered grouping. It marshals to a JSON object whose key
// order follows the slice, so "top" lists stay ranked on the wire.
type CountGroup []CountEntry

// Top returns the first key, or nil when the group is empty.
func (g CountGroup) Top() *string {
	if len(g) == 0 {
		return nil
	}
	k := g[0].Key
	return &k
}

// Get returns the count recorded for key.
func (g CountGroup) Get(key string) int64 {
	for _, e := range g {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// Keys returns the keys in order.
func (g CountGroup) Keys() []string {
	keys := make([]string, len(g))
	for i, e := range g {
		keys[i] = e.Key
	}
	return keys
}

func (g CountGroup) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(e.Count, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the document's key order.
func (g *CountGroup) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("count group: expected object, got %v", tok)
	}
	out := CountGroup{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var n int64
		if err := dec.Decode(&n); err != nil {
			return err
		}
		out = append(out, CountEntry{Key: key, Count: n})
	}
	*g = out
	return nil
}
