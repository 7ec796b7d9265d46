// Command plantrip plans a trip from the terminal using the same weather
// and itinerary services as the web server. It needs only the two API keys.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neexbeast/trip-planner/internal/config"
	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/trip"
	"github.com/neexbeast/trip-planner/internal/weather"
)

type tripPlanner interface {
	PlanTrip(ctx context.Context, req trip.Request) (*trip.Response, error)
}

// plannerFactory builds the planner once flags are parsed. Logs go to stderr.
type plannerFactory func(ctx context.Context, stderr io.Writer) (tripPlanner, error)

type options struct {
	from   string
	to     string
	start  string
	end    string
	asJSON bool
}

func main() {
	if err := newRootCmd(buildPlanner).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(factory plannerFactory) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "plantrip",
		Short: "Plan a trip with a weather forecast and a day-by-day itinerary",
		Long: `Plan a trip from the command line.

Reads WEATHER_API_KEY and GEMINI_API_KEY from the environment.

Examples:
  plantrip --from NYC --to Paris --start 2025-07-01 --end 2025-07-04
  plantrip --from Zagreb --to Split --start 2025-08-10 --end 2025-08-14 --json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, factory, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.from, "from", "", "where the trip starts")
	flags.StringVar(&opts.to, "to", "", "destination")
	flags.StringVar(&opts.start, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&opts.end, "end", "", "end date (YYYY-MM-DD)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the response as JSON")

	return cmd
}

func runPlan(cmd *cobra.Command, factory plannerFactory, opts options) error {
	planner, err := factory(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	resp, err := planner.PlanTrip(cmd.Context(), trip.Request{
		Source:      opts.from,
		Destination: opts.to,
		StartDate:   opts.start,
		EndDate:     opts.end,
	})
	if err != nil {
		var terr *trip.Error
		if errors.As(err, &terr) {
			return fmt.Errorf("%s: %s", terr.Kind.Class(), terr.UserMessage())
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printResponse(out, resp)
	return nil
}

func buildPlanner(ctx context.Context, stderr io.Writer) (tripPlanner, error) {
	cfg, err := config.LoadPlanning()
	if err != nil {
		return nil, err
	}

	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	generator, err := itinerary.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating itinerary generator: %w", err)
	}

	weatherClient := weather.NewClient(weather.Config{
		APIKey:  cfg.WeatherAPIKey,
		BaseURL: cfg.WeatherBaseURL,
		Timeout: cfg.WeatherTimeout,
	}, log)

	return trip.NewPlanner(weatherClient, generator, log), nil
}

func printResponse(w io.Writer, resp *trip.Response) {
	fmt.Fprintf(w, "%s to %s, %s to %s (%d days)\n\n", resp.Source, resp.Destination, resp.StartDate, resp.EndDate, resp.Days)

	if resp.WeatherData == nil {
		fmt.Fprintln(w, "Weather: not available")
	} else {
		fmt.Fprintf(w, "Weather in %s\n", resp.WeatherData.ResolvedAddress)
		for _, d := range resp.WeatherData.Days {
			fmt.Fprintf(w, "  %s  %5.1f / %5.1f °C  %s\n", d.Date, d.TempMin, d.TempMax, d.Conditions)
		}
	}
	fmt.Fprintln(w)

	plan := resp.Itinerary
	if plan == nil {
		return
	}
	if plan.Summary != "" {
		fmt.Fprintln(w, plan.Summary)
		fmt.Fprintln(w)
	}
	if !plan.Structured() {
		fmt.Fprintln(w, strings.TrimSpace(plan.Text))
		return
	}
	for _, d := range plan.Days {
		header := fmt.Sprintf("Day %d", d.Day)
		if d.Date != "" {
			header += " (" + d.Date + ")"
		}
		fmt.Fprintf(w, "%s: %s\n", header, d.Title)
		for _, a := range d.Activities {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}
}
