package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

// horizonDays is the rolling planning window each track is filled out to.
const horizonDays = 7

const (
	StepAdvanced  = "advanced"
	StepPostponed = "postponed"
	StepBlocked   = "blocked"
)

type PlannerServiceInterface interface {
	CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.TripResponse, error)

	// Step runs one full scheduler cycle for the trip: reconcile pending days,
	// extend both tracks to the horizon, evaluate the lift-off gate, then
	// advance (or postpone) the current date.
	Step(ctx context.Context, tripID uuid.UUID) (*response_models.StepResponse, error)

	GetTracks(ctx context.Context, tripID uuid.UUID) (*response_models.TracksResponse, error)
	SelectDay(ctx context.Context, tripID, itineraryID uuid.UUID, selected bool) error
	CurrentLocation(ctx context.Context, tripID uuid.UUID) (*response_models.CurrentLocationResponse, error)
	PastItineraries(ctx context.Context, tripID uuid.UUID) ([]response_models.ItineraryDayResponse, error)
}

type PlannerService struct {
	sessions    *SessionRegistry
	airports    repositories.AirportRepository
	itineraries repositories.ItineraryRepository
	forecasts   ForecastServiceInterface
	candidates  CandidateSelectorInterface
	picker      *VenuePicker
	gate        *WeatherGate
	strategies  []TrackStrategy
}

func NewPlannerService(
	sessions *SessionRegistry,
	airports repositories.AirportRepository,
	itineraries repositories.ItineraryRepository,
	forecasts ForecastServiceInterface,
	candidates CandidateSelectorInterface,
	picker *VenuePicker,
	gate *WeatherGate,
	scorer *DestinationScorer,
) PlannerServiceInterface {
	return &PlannerService{
		sessions:    sessions,
		airports:    airports,
		itineraries: itineraries,
		forecasts:   forecasts,
		candidates:  candidates,
		picker:      picker,
		gate:        gate,
		strategies: []TrackStrategy{
			NewClosestPathStrategy(scorer),
			NewEntertainmentStrategy(scorer),
		},
	}
}

func (p *PlannerService) CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	finalDestination, err := p.airports.FindByName(ctx, req.FinalDestination)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	if finalDestination == nil {
		return nil, utils.ErrAirportNotFound
	}

	var start *db_models.Airport
	if req.StartAirport != "" {
		start, err = p.airports.FindByName(ctx, req.StartAirport)
		if err != nil {
			return nil, utils.ErrPersistenceUnavailable
		}
		if start == nil {
			return nil, utils.ErrAirportNotFound
		}
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		startDate = parsed
	}

	s := NewPlanningSession(start, finalDestination, startDate)
	p.sessions.Add(s)

	return &response_models.TripResponse{
		TripID:           s.ID.String(),
		CurrentDate:      utils.FormatDate(s.CurrentDate),
		StartAirport:     s.StartAirport.Name,
		FinalDestination: s.FinalDestination.Name,
	}, nil
}

// trackState is what reconciliation learns about one track: the furthest
// planned date and the airport reached on it.
type trackState struct {
	maxDate time.Time
	airport *db_models.Airport
}

func (p *PlannerService) Step(ctx context.Context, tripID uuid.UUID) (*response_models.StepResponse, error) {
	s := p.sessions.Get(tripID)
	if s == nil {
		return nil, utils.ErrTripNotFound
	}
	if !s.TryLock() {
		return nil, utils.ErrStepInProgress
	}
	defer s.Unlock()

	var warnings []string

	// Reconciling: refresh weather for every pending day and find each
	// track's frontier.
	existing, err := p.itineraries.ListFromDate(ctx, s.ID, s.CurrentDate)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	states := map[string]*trackState{
		db_models.TrackClosest:       {maxDate: s.CurrentDate, airport: s.StartAirport},
		db_models.TrackEntertainment: {maxDate: s.CurrentDate, airport: s.StartAirport},
	}
	for i := range existing {
		it := &existing[i]
		if err := p.forecasts.RefreshAirportForecasts(ctx, &it.Airport, it.Date, s.CurrentDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("weather refresh for %s: %v", it.Airport.Name, err))
		}
		st, ok := states[it.TrackKind]
		if !ok {
			continue
		}
		if it.Date.After(st.maxDate) {
			st.maxDate = utils.DateOnly(it.Date)
			st.airport = &it.Airport
		}
	}

	// Extending: fill each track out to the horizon.
	newDays := 0
	for _, strat := range p.strategies {
		st := states[strat.Kind()]
		needed := horizonDays - utils.DaysBetween(s.CurrentDate, st.maxDate)
		queued, skipped, err := p.extendTrack(ctx, s, strat, st.airport, st.maxDate, needed)
		newDays += len(queued)
		warnings = append(warnings, skipped...)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s track extension: %v", strat.Kind(), err))
		}
		if err := p.linkQueued(ctx, s, queued); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s track linking: %v", strat.Kind(), err))
		}
	}

	// AwaitingLiftOff: today's days may only become final if every airport
	// they touch clears the hourly gate.
	todays, err := p.itineraries.ListByDate(ctx, s.ID, s.CurrentDate)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	state := StepAdvanced
	if len(todays) > 0 {
		liftOff := true
		checked := map[uuid.UUID]bool{}
		var gateErr error
		for i := range todays {
			if gateErr != nil {
				break
			}
			for _, airport := range []*db_models.Airport{&todays[i].Airport, &todays[i].LeftFromAirport} {
				if checked[airport.ID] {
					continue
				}
				checked[airport.ID] = true
				ok, err := p.gate.LiftOffPermitted(ctx, airport, todays[i].Date)
				if err != nil {
					gateErr = err
					break
				}
				if !ok {
					liftOff = false
				}
			}
		}

		switch {
		case gateErr != nil:
			// The gate could not be evaluated; leave everything untouched and
			// let the next trigger retry.
			warnings = append(warnings, fmt.Sprintf("lift-off gate: %v", gateErr))
			state = StepBlocked
		case !liftOff:
			if err := p.postponePending(ctx, s); err != nil {
				return nil, err
			}
			state = StepPostponed
		default:
			if err := p.advanceDay(ctx, s, todays); err != nil {
				return nil, err
			}
		}
	} else {
		s.CurrentDate = utils.NextDay(s.CurrentDate)
	}

	return &response_models.StepResponse{
		TripID:      s.ID.String(),
		State:       state,
		CurrentDate: utils.FormatDate(s.CurrentDate),
		NewDays:     newDays,
		Warnings:    warnings,
	}, nil
}

func (p *PlannerService) extendTrack(ctx context.Context, s *PlanningSession, strat TrackStrategy, current *db_models.Airport, fromDate time.Time, needed int) ([]*db_models.Itinerary, []string, error) {
	queued := make([]*db_models.Itinerary, 0, max(needed, 0))
	var skipped []string
	date := utils.DateOnly(fromDate)

	for i := 0; i < needed; i++ {
		date = utils.NextDay(date)
		day, next, err := p.buildDay(ctx, s, strat, current, date)
		if err != nil {
			if errors.Is(err, utils.ErrInvalidItineraryState) {
				// Fatal to this day only: skip it and keep planning from the
				// same airport.
				skipped = append(skipped, fmt.Sprintf("skipped %s day %s: %v", strat.Kind(), utils.FormatDate(date), err))
				continue
			}
			return queued, skipped, err
		}
		queued = append(queued, day)
		current = next
	}
	return queued, skipped, nil
}

// buildDay constructs one itinerary day: pick the airport and city, resolve
// the day's forecast, choose venues, and persist.
func (p *PlannerService) buildDay(ctx context.Context, s *PlanningSession, strat TrackStrategy, current *db_models.Airport, date time.Time) (*db_models.Itinerary, *db_models.Airport, error) {
	candidates, err := p.candidates.ReachableAirports(ctx, current, date)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return nil, nil, utils.ErrNoCandidateAirports
	}

	airport, err := strat.SelectNextAirport(ctx, s, candidates, current, date)
	if err != nil {
		return nil, nil, err
	}
	city, err := strat.SelectCity(ctx, airport, date)
	if err != nil {
		return nil, nil, err
	}

	forecast, err := p.forecasts.ForecastFor(ctx, db_models.CityRef(city), date)
	if err != nil {
		return nil, nil, err
	}
	venues := p.picker.DetermineVenues(s, OpenVenues(city.Venues, forecast))
	leftFrom := departureAirport(city, airport)

	day := &db_models.Itinerary{
		TripID:            s.ID,
		Date:              date,
		AirportID:         airport.ID,
		CityID:            city.ID,
		LeftFromAirportID: leftFrom.ID,
		TrackKind:         strat.Kind(),
		Venues:            venues,
		Airport:           *airport,
		City:              *city,
		LeftFromAirport:   *leftFrom,
	}
	if err := p.itineraries.Create(ctx, day); err != nil {
		return nil, nil, utils.ErrPersistenceUnavailable
	}
	return day, airport, nil
}

// departureAirport: leave from the city's other airport when it has one,
// otherwise from the arrival airport itself.
func departureAirport(city *db_models.City, arrival *db_models.Airport) *db_models.Airport {
	if len(city.Airports) > 1 {
		var leaveFrom *db_models.Airport
		for _, a := range city.Airports {
			if a.ID != arrival.ID {
				leaveFrom = a
			}
		}
		if leaveFrom != nil {
			return leaveFrom
		}
	}
	return arrival
}

// linkQueued chains each queued day to its successor's city, and points the
// persisted day one date before the first queued day (from either track) at
// the first queued day's city.
func (p *PlannerService) linkQueued(ctx context.Context, s *PlanningSession, queued []*db_models.Itinerary) error {
	if len(queued) == 0 {
		return nil
	}
	for i := 0; i+1 < len(queued); i++ {
		queued[i].NextCity = queued[i+1].City.Name
		if err := p.itineraries.Save(ctx, queued[i]); err != nil {
			return utils.ErrPersistenceUnavailable
		}
	}

	prevDate := utils.DateOnly(queued[0].Date).AddDate(0, 0, -1)
	prior, err := p.itineraries.ListByDate(ctx, s.ID, prevDate)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if len(prior) > 0 {
		last := prior[len(prior)-1]
		last.NextCity = queued[0].City.Name
		if err := p.itineraries.Save(ctx, &last); err != nil {
			return utils.ErrPersistenceUnavailable
		}
	}
	return nil
}

// postponePending shifts every still-pending day forward by one and moves
// the current date with them, so the next trigger gates the same days on
// their new date.
func (p *PlannerService) postponePending(ctx context.Context, s *PlanningSession) error {
	pending, err := p.itineraries.ListPending(ctx, s.ID)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	for i := range pending {
		pending[i].Date = utils.NextDay(pending[i].Date)
		if err := p.itineraries.Save(ctx, &pending[i]); err != nil {
			return utils.ErrPersistenceUnavailable
		}
	}
	s.CurrentDate = utils.NextDay(s.CurrentDate)
	return nil
}

// advanceDay keeps today's selected days as history, discards the rest, and
// moves the current date forward.
func (p *PlannerService) advanceDay(ctx context.Context, s *PlanningSession, todays []db_models.Itinerary) error {
	for i := range todays {
		if todays[i].Selected {
			todays[i].TrackKind = db_models.TrackPast
			if err := p.itineraries.Save(ctx, &todays[i]); err != nil {
				return utils.ErrPersistenceUnavailable
			}
		} else {
			if err := p.itineraries.Delete(ctx, &todays[i]); err != nil {
				return utils.ErrPersistenceUnavailable
			}
		}
	}
	s.CurrentDate = utils.NextDay(s.CurrentDate)
	return nil
}

func (p *PlannerService) GetTracks(ctx context.Context, tripID uuid.UUID) (*response_models.TracksResponse, error) {
	if p.sessions.Get(tripID) == nil {
		return nil, utils.ErrTripNotFound
	}
	itineraries, err := p.itineraries.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	out := &response_models.TracksResponse{
		Closest:       []response_models.ItineraryDayResponse{},
		Entertainment: []response_models.ItineraryDayResponse{},
		Past:          []response_models.ItineraryDayResponse{},
	}
	for i := range itineraries {
		day := buildDayResponse(&itineraries[i])
		switch itineraries[i].TrackKind {
		case db_models.TrackClosest:
			out.Closest = append(out.Closest, day)
		case db_models.TrackEntertainment:
			out.Entertainment = append(out.Entertainment, day)
		case db_models.TrackPast:
			out.Past = append(out.Past, day)
		}
	}
	return out, nil
}

func (p *PlannerService) SelectDay(ctx context.Context, tripID, itineraryID uuid.UUID, selected bool) error {
	if p.sessions.Get(tripID) == nil {
		return utils.ErrTripNotFound
	}
	itinerary, err := p.itineraries.FindByID(ctx, itineraryID)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if itinerary == nil || itinerary.TripID != tripID {
		return utils.ErrItineraryNotFound
	}
	itinerary.Selected = selected
	if err := p.itineraries.Save(ctx, itinerary); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

func (p *PlannerService) CurrentLocation(ctx context.Context, tripID uuid.UUID) (*response_models.CurrentLocationResponse, error) {
	s := p.sessions.Get(tripID)
	if s == nil {
		return nil, utils.ErrTripNotFound
	}
	todays, err := p.itineraries.ListByDate(ctx, tripID, s.CurrentDate)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	if len(todays) == 0 {
		return nil, utils.ErrItineraryNotFound
	}
	airport := todays[0].Airport
	return &response_models.CurrentLocationResponse{
		Airport:   airport.Name,
		Latitude:  airport.Latitude,
		Longitude: airport.Longitude,
	}, nil
}

func (p *PlannerService) PastItineraries(ctx context.Context, tripID uuid.UUID) ([]response_models.ItineraryDayResponse, error) {
	s := p.sessions.Get(tripID)
	if s == nil {
		return nil, utils.ErrTripNotFound
	}
	past, err := p.itineraries.ListBefore(ctx, tripID, s.CurrentDate)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	out := make([]response_models.ItineraryDayResponse, 0, len(past))
	for i := range past {
		out = append(out, buildDayResponse(&past[i]))
	}
	return out, nil
}

func buildDayResponse(it *db_models.Itinerary) response_models.ItineraryDayResponse {
	venues := make([]response_models.VenueSummary, 0, len(it.Venues))
	for _, v := range it.Venues {
		venues = append(venues, response_models.VenueSummary{Name: v.Name, VenueType: v.VenueType})
	}
	return response_models.ItineraryDayResponse{
		ID:        it.ID.String(),
		Date:      utils.FormatDate(it.Date),
		Track:     it.TrackKind,
		ArriveAt:  it.Airport.Name,
		City:      it.City.Name,
		LeaveFrom: it.LeftFromAirport.Name,
		NextCity:  it.NextCity,
		Venues:    venues,
		Selected:  it.Selected,
	}
}
