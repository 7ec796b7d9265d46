package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/neexbeast/trip-planner/internal/trip"
)

const maxJSONBody = 1 << 20

// Deps holds the collaborators for all HTTP handlers.
type Deps struct {
	Planner TripPlanner
	Weather WeatherLookup
	Guides  GuideService
	Zones   ZoneLookup
	Flash   FlashStore
	Log     *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	planner TripPlanner
	weather WeatherLookup
	guides  GuideService
	zones   ZoneLookup
	flash   FlashStore
	pages   *pages
	log     *slog.Logger
	now     func() time.Time
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(d Deps) *Handlers {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		planner: d.Planner,
		weather: d.Weather,
		guides:  d.Guides,
		zones:   d.Zones,
		flash:   d.Flash,
		pages:   mustParsePages(),
		log:     log,
		now:     now,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error shape of the trip API.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Class string `json:"class,omitempty"`
}

// PlanTripJSON handles POST /api/v1/trips.
// Validation failures → 400. Itinerary failures → 502.
func (h *Handlers) PlanTripJSON(w http.ResponseWriter, r *http.Request) {
	var req trip.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	resp, err := h.planner.PlanTrip(r.Context(), req)
	if err != nil {
		var terr *trip.Error
		if !errors.As(err, &terr) {
			h.log.Error("plan trip failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
			return
		}

		status := http.StatusBadRequest
		if terr.Kind == trip.KindGeneration {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorBody{
			Error: terr.UserMessage(),
			Kind:  terr.Kind.String(),
			Class: terr.Kind.Class(),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 3 * time.Second

// HealthHandlerFunc pings every named dependency and reports each one under
// its name next to an overall status. Any failed ping makes the response 503.
func HealthHandlerFunc(checks map[string]Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		body := make(map[string]string, len(checks)+1)
		code := http.StatusOK
		for name, p := range checks {
			body[name] = "ok"
			if err := p.Ping(ctx); err != nil {
				log.Error("health check failed", "dependency", name, "err", err)
				body[name] = "error"
				code = http.StatusServiceUnavailable
			}
		}

		body["status"] = "ok"
		if code != http.StatusOK {
			body["status"] = "degraded"
		}
		writeJSON(w, code, body)
	}
}
