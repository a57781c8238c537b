package reagent

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// StatKey names a counter. Keys of the agent itself use the "reagent:" prefix; use your own
// prefix for custom counters.
type StatKey string

// Standard counters.
const (
	KeyPrefix = "reagent:"

	KeyGenerations = StatKey("reagent:generations")
	KeyNewChars    = StatKey("reagent:new_chars")
	KeyStopped     = StatKey("reagent:stopped_at_marker")

	KeyToolCalls    = StatKey("reagent:tool_calls")
	KeyToolCallsFor = StatKey("reagent:tool_calls:") // + tool name

	KeyParseErrors = StatKey("reagent:parse_errors")
)

// For appends a suffix, e.g. KeyToolCallsFor.For("Calculator").
func (k StatKey) For(suffix string) StatKey {
	return k + StatKey(suffix)
}

// Stats holds monotonically increasing counters. It is safe for concurrent use.
type Stats struct {
	mu       sync.RWMutex
	counters map[StatKey]int64
}

// NewStats creates empty stats.
func NewStats() *Stats {
	return &Stats{counters: make(map[StatKey]int64)}
}

// Incr adds delta to key. Negative deltas panic: counters only go up.
func (s *Stats) Incr(key StatKey, delta int64) {
	if delta < 0 {
		panic("reagent: negative counter delta for " + string(key))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
}

// Get returns the value of key, or 0.
func (s *Stats) Get(key StatKey) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Snapshot copies every counter.
func (s *Stats) Snapshot() map[StatKey]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[StatKey]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// String renders the counters sorted by key, e.g. "reagent:generations=2 reagent:tool_calls=1".
func (s *Stats) String() string {
	snap := s.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(snap[StatKey(k)], 10))
	}
	return sb.String()
}
