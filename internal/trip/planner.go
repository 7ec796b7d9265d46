package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/weather"
)

// WeatherFetcher is satisfied by *weather.Client.
type WeatherFetcher interface {
	Fetch(ctx context.Context, location, startDate, endDate string) (*weather.Report, error)
}

// ItineraryGenerator is satisfied by *itinerary.Generator.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req itinerary.Request) (*itinerary.Plan, error)
}

// Planner composes the weather lookup and itinerary generation for one request.
// Weather failures are logged and tolerated; itinerary failures abort the plan.
type Planner struct {
	weather   WeatherFetcher
	itinerary ItineraryGenerator
	validate  *validator.Validate
	log       *slog.Logger
}

// NewPlanner constructs a Planner.
func NewPlanner(w WeatherFetcher, g ItineraryGenerator, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	return &Planner{
		weather:   w,
		itinerary: g,
		validate:  newValidator(),
		log:       log,
	}
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// PlanTrip validates req and, if it is valid, fetches the forecast and then
// generates the itinerary. Any returned error is a *Error.
func (p *Planner) PlanTrip(ctx context.Context, req Request) (*Response, error) {
	req = Request{
		Source:      strings.TrimSpace(req.Source),
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   strings.TrimSpace(req.StartDate),
		EndDate:     strings.TrimSpace(req.EndDate),
	}

	if err := p.checkRequired(req); err != nil {
		return nil, err
	}

	days, err := ValidateDates(req.StartDate, req.EndDate)
	if err != nil {
		kind := KindInvalidRange
		if errors.Is(err, ErrDateFormat) {
			kind = KindDateFormat
		}
		return nil, &Error{Kind: kind, Message: err.Error(), Err: err}
	}

	forecast := p.forecast(ctx, req)

	plan, err := p.itinerary.Generate(ctx, itinerary.Request{
		Source:      req.Source,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        int(days),
	})
	if err == nil && plan == nil {
		err = itinerary.ErrEmptyPlan
	}
	if err != nil {
		p.log.Error("itinerary generation failed", "source", req.Source, "destination", req.Destination, "err", err)
		return nil, &Error{Kind: KindGeneration, Message: err.Error(), Err: err}
	}

	return &Response{
		Itinerary:   plan,
		WeatherData: forecast,
		Source:      req.Source,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        int(days),
	}, nil
}

func (p *Planner) checkRequired(req Request) error {
	err := p.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindMissingField, Message: err.Error(), Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	msg := "missing " + strings.Join(fields, ", ")
	return &Error{Kind: KindMissingField, Message: msg, Err: fmt.Errorf("%w: %s", ErrMissingField, strings.Join(fields, ", "))}
}

// forecast swallows weather failures: the plan is still useful without it.
func (p *Planner) forecast(ctx context.Context, req Request) *weather.Report {
	report, err := p.weather.Fetch(ctx, req.Destination, req.StartDate, req.EndDate)
	if err != nil {
		p.log.Warn("weather unavailable, continuing without forecast",
			"destination", req.Destination, "start", req.StartDate, "end", req.EndDate, "err", err)
		return nil
	}
	return report
}
