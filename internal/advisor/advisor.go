package advisor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jgoulah/energyopt/pkg/models"
)

// Fallback is returned when no rule fires
const Fallback models.Recommendation = "Your energy usage is optimal. Keep it up!"

// Advisor evaluates a rule table against daily averages
type Advisor struct {
	rules []models.Rule
}

// New validates the rule table and creates an advisor.
// Day labels are normalized to their canonical weekday names.
func New(rules []models.Rule) (*Advisor, error) {
	checked := make([]models.Rule, 0, len(rules))
	var errs []error

	for i, r := range rules {
		day, ok := models.NormalizeDay(r.Day)
		switch {
		case !ok:
			errs = append(errs, ruleError(i, r.Day, fmt.Errorf("unknown day label %q", r.Day)))
		case math.IsNaN(r.Threshold) || math.IsInf(r.Threshold, 0) || r.Threshold < 0:
			errs = append(errs, ruleError(i, day, fmt.Errorf("threshold %v must be a finite non-negative number", r.Threshold)))
		case strings.TrimSpace(r.Message) == "":
			errs = append(errs, ruleError(i, day, fmt.Errorf("message is empty")))
		default:
			r.Day = day
			checked = append(checked, r)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Advisor{rules: checked}, nil
}

func ruleError(i int, day string, err error) error {
	return fmt.Errorf("rule %d: %w", i+1, &models.Error{Kind: models.KindInvalidRule, Day: day, Err: err})
}

// Rules returns the validated rule table in evaluation order
func (a *Advisor) Rules() []models.Rule {
	return append([]models.Rule(nil), a.rules...)
}

// Advise returns the message of every rule whose day average is strictly
// above its threshold, in table order. A day without samples counts as 0.
// When nothing fires the single Fallback recommendation is returned.
func (a *Advisor) Advise(avgs models.DailyAverages) []models.Recommendation {
	var recs []models.Recommendation
	for _, r := range a.rules {
		if avgs.Value(r.Day) > r.Threshold {
			recs = append(recs, models.Recommendation(r.Message))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, Fallback)
	}
	return recs
}
