package aggregator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/montanaflynn/stats"

	"github.com/jgoulah/energyopt/pkg/models"
)

// Aggregator reduces raw samples to per-day means
type Aggregator struct {
	logger *slog.Logger
}

// New creates an aggregator that reports skipped samples to logger
func New(logger *slog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate groups samples by day in first-seen order and averages each group.
// Invalid samples are skipped; the averages over the remaining samples are
// returned together with the joined InvalidSample errors.
func (a *Aggregator) Aggregate(samples []models.Sample) (models.DailyAverages, error) {
	var order []string
	usage := make(map[string][]float64)
	var errs []error

	for i, s := range samples {
		if err := s.Validate(); err != nil {
			a.logger.Warn("skipping sample", "index", i, "day", s.Day, "kwh", s.KWh, "error", err)
			errs = append(errs, fmt.Errorf("sample %d: %w", i+1, err))
			continue
		}
		if _, seen := usage[s.Day]; !seen {
			order = append(order, s.Day)
		}
		usage[s.Day] = append(usage[s.Day], s.KWh)
	}

	result := make(models.DailyAverages, 0, len(order))
	for _, day := range order {
		values := usage[day]
		mean, err := stats.Mean(values)
		if err != nil {
			errs = append(errs, &models.Error{Kind: models.KindInvalidSample, Day: day, Err: err})
			continue
		}
		result = append(result, models.DailyAverage{Day: day, KWh: mean, Samples: len(values)})
	}

	a.logger.Debug("aggregated samples", "samples", len(samples), "days", len(result), "skipped", len(errs))
	return result, errors.Join(errs...)
}
