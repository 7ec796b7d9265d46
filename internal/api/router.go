package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterConfig carries the router's tunables.
type RouterConfig struct {
	UploadDir          string
	CORSOrigins        []string
	RateLimitPerMinute int
}

// NewRouter builds and returns the Chi router with all routes configured.
// Rate limiting is applied per client IP. The health route pings db and the
// handlers' flash store.
func NewRouter(h *Handlers, cfg RouterConfig, db Pinger, log *slog.Logger) *chi.Mux {
	limit := cfg.RateLimitPerMinute
	if limit <= 0 {
		limit = 60
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.CORSOrigins))
	r.Use(httprate.LimitByIP(limit, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(map[string]Pinger{
		"db":    db,
		"redis": h.flash,
	}, log))
	r.Post("/api/v1/trips", h.PlanTripJSON)

	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/destinations", h.Destinations)
	r.Get("/city", h.CityForm)
	r.Post("/city", h.PlanTrip)
	r.Get("/weather/{city}", h.Weather)
	r.Get("/details/{zone}", h.ZoneDetails)
	r.Get("/local_guide", h.ListGuides)
	r.Post("/local_guide", h.AddGuide)
	r.Post("/update_city_condition/{guideID}", h.UpdateCityCondition)

	if cfg.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	r.NotFound(h.NotFound)

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
