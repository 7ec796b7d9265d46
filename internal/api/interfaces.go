package api

import (
	"context"

	"github.com/neexbeast/trip-planner/internal/flash"
	"github.com/neexbeast/trip-planner/internal/guide"
	"github.com/neexbeast/trip-planner/internal/trip"
	"github.com/neexbeast/trip-planner/internal/weather"
	"github.com/neexbeast/trip-planner/internal/zone"
)

// TripPlanner defines the trip planning operation needed by handlers.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req trip.Request) (*trip.Response, error)
}

// WeatherLookup returns a forecast or nil when none is available.
type WeatherLookup interface {
	Lookup(ctx context.Context, location, startDate, endDate string) *weather.Report
}

// GuideService defines the local-guide operations needed by handlers.
type GuideService interface {
	Add(ctx context.Context, form guide.Form, photo *guide.Photo) (*guide.Guide, error)
	List(ctx context.Context) ([]*guide.Guide, error)
	UpdateCityCondition(ctx context.Context, id, condition string) error
}

// ZoneLookup defines the zone details lookup needed by handlers.
type ZoneLookup interface {
	Lookup(name string) (zone.Details, error)
}

// FlashStore defines the per-session message queue needed by handlers.
// Its Ping backs the redis entry of the health check.
type FlashStore interface {
	Pinger
	Add(ctx context.Context, session string, msg flash.Message) error
	Pop(ctx context.Context, session string) ([]flash.Message, error)
}
