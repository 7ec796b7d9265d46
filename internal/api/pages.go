package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/trip-planner/internal/flash"
	"github.com/neexbeast/trip-planner/internal/trip"
	"github.com/neexbeast/trip-planner/internal/weather"
	"github.com/neexbeast/trip-planner/internal/zone"
)

// Home handles GET /.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", page{Title: "Home", Flashes: h.popFlashes(w, r)})
}

// About handles GET /about.
func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about", page{Title: "About", Flashes: h.popFlashes(w, r)})
}

// Destinations handles GET /destinations.
func (h *Handlers) Destinations(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "destinations", page{Title: "Destinations", Flashes: h.popFlashes(w, r)})
}

// CityForm handles GET /city.
func (h *Handlers) CityForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "city", page{Title: "Plan a trip", Flashes: h.popFlashes(w, r)})
}

// PlanTrip handles POST /city. Any failure is flashed and redirects back to
// the form; success renders the itinerary in place.
func (h *Handlers) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/city", flash.Error("Please fill in all fields correctly."))
		return
	}

	req := trip.Request{
		Source:      r.PostForm.Get("source"),
		Destination: r.PostForm.Get("destination"),
		StartDate:   r.PostForm.Get("start_date"),
		EndDate:     r.PostForm.Get("end_date"),
	}

	resp, err := h.planner.PlanTrip(r.Context(), req)
	if err != nil {
		msg := "Error: " + err.Error()
		var terr *trip.Error
		if errors.As(err, &terr) {
			msg = terr.UserMessage()
		}
		h.redirectWithFlash(w, r, "/city", flash.Error(msg))
		return
	}

	h.render(w, http.StatusOK, "city", page{
		Title:   fmt.Sprintf("%s to %s", resp.Source, resp.Destination),
		Flashes: h.popFlashes(w, r),
		Data:    resp,
	})
}

// Weather handles GET /weather/{city}: the forecast from today to tomorrow.
func (h *Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	today := h.now()
	start := today.Format(time.DateOnly)
	end := today.AddDate(0, 0, 1).Format(time.DateOnly)

	report := h.weather.Lookup(r.Context(), city, start, end)
	if report == nil {
		h.redirectWithFlash(w, r, "/city", flash.Error(fmt.Sprintf("Weather data for %s could not be retrieved.", city)))
		return
	}

	h.render(w, http.StatusOK, "weather", page{
		Title:   fmt.Sprintf("Weather in %s", city),
		Flashes: h.popFlashes(w, r),
		Data: struct {
			City   string
			Report *weather.Report
		}{city, report},
	})
}

// ZoneDetails handles GET /details/{zone}.
func (h *Handlers) ZoneDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "zone")

	details, err := h.zones.Lookup(name)
	if err != nil {
		if errors.Is(err, zone.ErrNotFound) {
			h.render(w, http.StatusNotFound, "not_found", page{Title: "Not found", Data: "Zone not found"})
			return
		}
		h.log.Error("zone lookup failed", "zone", name, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "details", page{
		Title:   name,
		Flashes: h.popFlashes(w, r),
		Data: struct {
			Name    string
			Details zone.Details
		}{name, details},
	})
}

// NotFound renders the 404 page for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "not_found", page{Title: "Not found"})
}
