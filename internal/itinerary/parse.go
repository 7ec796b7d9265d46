package itinerary

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// fencePattern matches a markdown code fence with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// extractJSON pulls a JSON object out of model output, preferring fenced
// blocks tagged json (or untagged) over the outermost braces of the raw text.
func extractJSON(text string) (string, bool) {
	for _, m := range fencePattern.FindAllStringSubmatch(text, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		body := strings.TrimSpace(m[2])
		if strings.HasPrefix(body, "{") && json.Valid([]byte(body)) {
			return body, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	body := text[start : end+1]
	if !json.Valid([]byte(body)) {
		return "", false
	}
	return body, true
}

// parsePlan turns model output into a Plan, falling back to a textual plan.
func parsePlan(text, startDate string) *Plan {
	body, ok := extractJSON(text)
	if !ok {
		return &Plan{Text: text}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(body), &plan); err != nil || len(plan.Days) == 0 {
		return &Plan{Text: text}
	}
	plan.Text = ""

	fillDates(&plan, startDate)
	return &plan
}

// fillDates sets Date on days the model left undated, counting from startDate.
func fillDates(plan *Plan, startDate string) {
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return
	}
	for i := range plan.Days {
		d := &plan.Days[i]
		if d.Day <= 0 {
			d.Day = i + 1
		}
		if d.Date == "" {
			d.Date = start.AddDate(0, 0, d.Day-1).Format(time.DateOnly)
		}
	}
}
