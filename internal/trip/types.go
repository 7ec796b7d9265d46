// Package trip plans a trip: it validates the request, looks up the weather
// for the destination and asks the itinerary generator for a day-by-day plan.
package trip

import (
	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/weather"
)

// Request is a trip submission. All fields are YYYY-MM-DD dates or free text.
type Request struct {
	Source      string `json:"source" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

// Duration is the number of whole days from start date to end date.
type Duration int

// Response is the planned trip. WeatherData is nil when the forecast was unavailable.
type Response struct {
	Itinerary   *itinerary.Plan `json:"itinerary"`
	WeatherData *weather.Report `json:"weather_data"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Days        int             `json:"days"`
}
