package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sample represents a single (day, usage) observation
type Sample struct {
	Day string  `json:"day"` // Canonical weekday name, e.g. "Monday"
	KWh float64 `json:"kwh"`
}

// ParseSample builds a Sample from a day label and a textual kWh value
func ParseSample(day, raw string) (Sample, error) {
	canonical, ok := NormalizeDay(day)
	if !ok {
		return Sample{}, &Error{Kind: KindInvalidSample, Day: day, Err: fmt.Errorf("unknown day label %q", day)}
	}

	kwh, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Sample{}, &Error{Kind: KindInvalidSample, Day: canonical, Err: fmt.Errorf("usage %q is not a number", raw)}
	}

	s := Sample{Day: canonical, KWh: kwh}
	if err := s.Validate(); err != nil {
		return Sample{}, err
	}
	return s, nil
}

// Validate checks the day label and that usage is finite and non-negative
func (s Sample) Validate() error {
	if _, ok := NormalizeDay(s.Day); !ok {
		return &Error{Kind: KindInvalidSample, Day: s.Day, Err: fmt.Errorf("unknown day label %q", s.Day)}
	}
	if math.IsNaN(s.KWh) || math.IsInf(s.KWh, 0) {
		return &Error{Kind: KindInvalidSample, Day: s.Day, Err: fmt.Errorf("usage %v is not finite", s.KWh)}
	}
	if s.KWh < 0 {
		return &Error{Kind: KindInvalidSample, Day: s.Day, Err: fmt.Errorf("usage %.2f is negative", s.KWh)}
	}
	return nil
}

// NormalizeDay maps a case-insensitive weekday name to its canonical form
func NormalizeDay(day string) (string, bool) {
	want := strings.TrimSpace(day)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(want, d.String()) {
			return d.String(), true
		}
	}
	return "", false
}

// DailyAverage is the mean usage of every sample recorded under one day
type DailyAverage struct {
	Day     string  `json:"day"`
	KWh     float64 `json:"kwh"`
	Samples int     `json:"samples"`
}

// DailyAverages holds per-day means in first-seen order
type DailyAverages []DailyAverage

// Lookup returns the mean for day and whether the day was observed
func (d DailyAverages) Lookup(day string) (float64, bool) {
	for _, avg := range d {
		if avg.Day == day {
			return avg.KWh, true
		}
	}
	return 0, false
}

// Value returns the mean for day, or 0 when the day has no samples.
// Threshold checks rely on this: an absent day never exceeds a
// non-negative threshold.
func (d DailyAverages) Value(day string) float64 {
	v, _ := d.Lookup(day)
	return v
}

// Total returns the sum of all daily means
func (d DailyAverages) Total() float64 {
	var total float64
	for _, avg := range d {
		total += avg.KWh
	}
	return total
}

// Days returns the day labels in report order
func (d DailyAverages) Days() []string {
	days := make([]string, 0, len(d))
	for _, avg := range d {
		days = append(days, avg.Day)
	}
	return days
}

// Recommendation is an advisory line produced by the advisor
type Recommendation string

// Rule fires its message when the day's average is above the threshold
type Rule struct {
	Day       string  `json:"day" yaml:"day"`
	Threshold float64 `json:"threshold" yaml:"threshold"` // kWh
	Message   string  `json:"message" yaml:"message"`
}

// DefaultRules returns the built-in rule table
func DefaultRules() []Rule {
	return []Rule{
		{Day: "Monday", Threshold: 30, Message: "Consider using energy saving mode on appliances on Monday."},
		{Day: "Sunday", Threshold: 25, Message: "Reduce the use of heating/cooling systems on Sunday."},
	}
}

// DefaultSamples returns the built-in example week
func DefaultSamples() []Sample {
	return []Sample{
		{Day: "Monday", KWh: 34}, {Day: "Monday", KWh: 30},
		{Day: "Tuesday", KWh: 28}, {Day: "Tuesday", KWh: 26},
		{Day: "Wednesday", KWh: 22}, {Day: "Wednesday", KWh: 24},
		{Day: "Thursday", KWh: 25}, {Day: "Thursday", KWh: 27},
		{Day: "Friday", KWh: 30}, {Day: "Friday", KWh: 34},
		{Day: "Saturday", KWh: 35}, {Day: "Saturday", KWh: 29},
		{Day: "Sunday", KWh: 25}, {Day: "Sunday", KWh: 28},
	}
}
