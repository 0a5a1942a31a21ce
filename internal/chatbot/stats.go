package chatbot

import (
	"sort"
	"sync"
	"time"

	"inmomax/internal/model"
)

// TopIntentsLimit is the number of intents reported by Snapshot.
const TopIntentsLimit = 5

// Stats counts processed messages per intent. Safe for concurrent use.
type Stats struct {
	mu        sync.Mutex
	processed int
	byIntent  map[string]int
	elapsed   time.Duration
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{byIntent: make(map[string]int)}
}

// Record counts one message classified as intent, answered in d.
func (s *Stats) Record(intent string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
	s.byIntent[intent]++
	s.elapsed += d
}

// Snapshot returns the totals, the most frequent intents (ties by name) and
// the mean response time in seconds.
func (s *Stats) Snapshot() model.ChatStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := make([]model.IntentCount, 0, len(s.byIntent))
	for name, n := range s.byIntent {
		top = append(top, model.IntentCount{Intent: name, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Intent < top[j].Intent
	})
	if len(top) > TopIntentsLimit {
		top = top[:TopIntentsLimit]
	}

	var avg float64
	if s.processed > 0 {
		avg = s.elapsed.Seconds() / float64(s.processed)
	}

	return model.ChatStats{
		Processed:           s.processed,
		TopIntents:          top,
		AverageResponseTime: avg,
	}
}
