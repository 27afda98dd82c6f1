package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

// PlanningSession is the per-trip planning state: the rolling current date,
// the active meridian target, and the outdoor event balance. One session is
// created per trip and discarded when the trip ends; components receive it
// explicitly on every call.
type PlanningSession struct {
	mu sync.Mutex

	ID          uuid.UUID
	CurrentDate time.Time

	// Target is the coordinate both tracks currently steer toward; it flips
	// between the meridian reference points as the traveler circles the globe.
	Target           utils.GeoPoint
	PreviousTarget   utils.GeoPoint
	StartAirport     *db_models.Airport
	FinalDestination *db_models.Airport

	OutdoorPlays          int
	OutdoorSportingEvents int
}

func NewPlanningSession(start, finalDestination *db_models.Airport, startDate time.Time) *PlanningSession {
	if start == nil {
		start = finalDestination
	}
	return &PlanningSession{
		ID:               uuid.New(),
		CurrentDate:      utils.DateOnly(startDate),
		Target:           utils.OppositePrimeMeridianTarget,
		StartAirport:     start,
		FinalDestination: finalDestination,
	}
}

// TryLock guards the single-flight rule: only one scheduler step may run
// against a session at a time.
func (s *PlanningSession) TryLock() bool {
	return s.mu.TryLock()
}

func (s *PlanningSession) Unlock() {
	s.mu.Unlock()
}

// SessionRegistry owns the live planning sessions, one per trip.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*PlanningSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*PlanningSession),
	}
}

func (r *SessionRegistry) Add(s *PlanningSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *SessionRegistry) Get(id uuid.UUID) *PlanningSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

func (r *SessionRegistry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
