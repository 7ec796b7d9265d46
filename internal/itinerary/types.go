package itinerary

// Request carries everything the model needs to plan a trip.
type Request struct {
	Source      string
	Destination string
	StartDate   string
	EndDate     string
	Days        int
}

// Day is one day of a structured plan.
type Day struct {
	Day        int      `json:"day"`
	Date       string   `json:"date,omitempty"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// Plan is a generated itinerary. When the model output could not be read as
// JSON, Days is empty and Text holds the model's answer verbatim.
type Plan struct {
	Summary string `json:"summary,omitempty"`
	Days    []Day  `json:"days,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Structured reports whether the plan carries per-day entries.
func (p *Plan) Structured() bool {
	return p != nil && len(p.Days) > 0
}
