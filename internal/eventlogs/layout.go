package eventlogs

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	rotatedSuffix    = ".bak"
	lockSuffix       = ".lock"
	rotationStampFmt = "2006-01-02_15-04-05"
)

// Layout locates the live segment and its rotated siblings on disk.
//
//	<dir>/<base>                     live segment
//	<dir>/<base>.<stamp>[-N].bak     rotated segments
//	<dir>/<base>.lock                advisory lock file
type Layout struct {
	Dir  string
	Base string
}

func (l Layout) LivePath() string {
	return filepath.Join(l.Dir, l.Base)
}

func (l Layout) LockPath() string {
	return l.LivePath() + lockSuffix
}

// rotatedName returns the segment name for a rotation at t. seq > 0 is used
// when a segment for the same second already exists.
func (l Layout) rotatedName(t time.Time, seq int) string {
	stamp := t.UTC().Format(rotationStampFmt)
	if seq > 0 {
		stamp += "-" + strconv.Itoa(seq)
	}
	return filepath.Join(l.Dir, l.Base+"."+stamp+rotatedSuffix)
}

type segmentKey struct {
	path  string
	stamp string
	seq   int
}

// RotatedSegments lists rotated segments, most recent rotation first.
// A missing directory yields no segments.
func (l Layout) RotatedSegments() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	prefix := l.Base + "."
	keys := make([]segmentKey, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, rotatedSuffix) {
			continue
		}
		middle := strings.TrimSuffix(strings.TrimPrefix(name, prefix), rotatedSuffix)
		if middle == "" {
			continue
		}
		keys = append(keys, parseSegmentKey(filepath.Join(l.Dir, name), middle))
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].stamp != keys[j].stamp {
			return keys[i].stamp > keys[j].stamp
		}
		return keys[i].seq > keys[j].seq
	})

	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = k.path
	}
	return paths, nil
}

func parseSegmentKey(path, middle string) segmentKey {
	n := len(rotationStampFmt)
	if len(middle) > n+1 && middle[n] == '-' {
		if seq, err := strconv.Atoi(middle[n+1:]); err == nil {
			return segmentKey{path: path, stamp: middle[:n], seq: seq}
		}
	}
	return segmentKey{path: path, stamp: middle}
}
