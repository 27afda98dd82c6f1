// pkg/memcache/hourly_envelopes.go
package mem

import (
	"sync"
	"time"

	"wayfarer/pkg/weatherapi"
)

// EnvelopeStore caches hourly lift-off envelopes per (airport, date) so a
// postponement cycle does not refetch the same window for every pending day.
type EnvelopeStore interface {
	Set(key string, env *weatherapi.HourlyEnvelope, ttl time.Duration)

	// Get returns the cached envelope if not expired, nil otherwise.
	Get(key string) *weatherapi.HourlyEnvelope
}

type entry struct {
	env       *weatherapi.HourlyEnvelope
	expiresAt time.Time
}

type HourlyEnvelopes struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewHourlyEnvelopes() *HourlyEnvelopes {
	return &HourlyEnvelopes{
		data: make(map[string]entry),
	}
}

func (s *HourlyEnvelopes) Set(key string, env *weatherapi.HourlyEnvelope, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		env:       env,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *HourlyEnvelopes) Get(key string) *weatherapi.HourlyEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil
	}
	return e.env
}
