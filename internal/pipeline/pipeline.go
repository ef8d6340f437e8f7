package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jgoulah/energyopt/internal/advisor"
	"github.com/jgoulah/energyopt/internal/aggregator"
	"github.com/jgoulah/energyopt/internal/report"
	"github.com/jgoulah/energyopt/pkg/models"
)

// Stage names a pipeline step
type Stage string

const (
	StageAggregate Stage = "aggregate"
	StageAdvise    Stage = "advise"
	StageReport    Stage = "report"
)

// Outcome is the tagged result of one stage; Err is nil on success
type Outcome struct {
	Stage Stage
	Err   error
}

// Options configures a single run
type Options struct {
	Samples []models.Sample
	Rules   []models.Rule
	Rate    float64 // cost per kWh, 0 disables the cost line
	Strict  bool    // abort on the first stage failure
	Logger  *slog.Logger
}

// Result holds everything a run produced
type Result struct {
	Averages        models.DailyAverages
	Recommendations []models.Recommendation
	Stages          []Outcome
}

// Failed reports whether any stage recorded an error
func (r *Result) Failed() bool {
	for _, o := range r.Stages {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Err returns the error recorded for stage, if any
func (r *Result) Err(stage Stage) error {
	for _, o := range r.Stages {
		if o.Stage == stage {
			return o.Err
		}
	}
	return nil
}

// Run aggregates samples, derives recommendations and writes the report to w.
// Stage failures are logged and the run continues with partial results unless
// opts.Strict is set, in which case the first failure is returned.
// Empty input is reported but never fatal.
func Run(opts Options, w io.Writer) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	res := &Result{}

	adv, err := advisor.New(opts.Rules)
	if err != nil {
		return res, fmt.Errorf("loading rules: %w", err)
	}

	if len(opts.Samples) == 0 {
		logger.Warn("no samples supplied, report will be empty",
			"error", &models.Error{Kind: models.KindEmptyInput})
	}

	avgs, err := aggregator.New(logger).Aggregate(opts.Samples)
	res.Averages = avgs
	if err := res.record(logger, StageAggregate, err, opts.Strict); err != nil {
		return res, err
	}

	res.Recommendations = adv.Advise(avgs)
	res.record(logger, StageAdvise, nil, opts.Strict)

	rep := report.New(w, report.WithRate(opts.Rate), report.WithLogger(logger))
	if err := res.record(logger, StageReport, rep.Write(avgs, res.Recommendations), opts.Strict); err != nil {
		return res, err
	}

	return res, nil
}

// record stores the stage outcome and returns a non-nil error only when the
// run must stop.
func (r *Result) record(logger *slog.Logger, stage Stage, err error, strict bool) error {
	r.Stages = append(r.Stages, Outcome{Stage: stage, Err: err})
	if err == nil {
		return nil
	}
	if strict {
		return fmt.Errorf("%s stage: %w", stage, err)
	}
	logger.Error("stage failed, continuing", "stage", stage, "error", err)
	return nil
}
