package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jgoulah/energyopt/pkg/models"
)

// Reporter renders daily averages and recommendations as text
type Reporter struct {
	w      io.Writer
	rate   float64
	logger *slog.Logger
}

// Option configures a Reporter
type Option func(*Reporter)

// WithRate adds an estimated cost line using the given cost per kWh
func WithRate(rate float64) Option {
	return func(r *Reporter) {
		r.rate = rate
	}
}

// WithLogger sets the logger used for formatting diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// New creates a reporter writing to w
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write renders the report. Values that cannot be rendered are replaced by a
// diagnostic line and returned as FormattingFailure errors; the rest of the
// report is still written.
func (r *Reporter) Write(avgs models.DailyAverages, recs []models.Recommendation) error {
	var buf bytes.Buffer
	var errs []error

	total := avgs.Total()
	if len(avgs) > 0 && !finite(total) {
		errs = append(errs, r.formatFailure(&buf, "", "total", total))
	} else {
		fmt.Fprintf(&buf, "Total weekly energy consumption: %s kWh\n", formatTotal(total, len(avgs)))
		if r.rate > 0 {
			cost := decimal.NewFromFloat(total).Mul(decimal.NewFromFloat(r.rate))
			fmt.Fprintf(&buf, "Estimated weekly cost: $%s\n", cost.StringFixed(2))
		}
	}

	buf.WriteString("Average daily consumption:\n")
	for _, avg := range avgs {
		if !finite(avg.KWh) {
			errs = append(errs, r.formatFailure(&buf, avg.Day, "average", avg.KWh))
			continue
		}
		fmt.Fprintf(&buf, "%s: %.2f kWh\n", avg.Day, avg.KWh)
	}

	buf.WriteString("\nPersonalized Recommendations:\n")
	for _, rec := range recs {
		fmt.Fprintf(&buf, "- %s\n", rec)
	}

	if _, err := r.w.Write(buf.Bytes()); err != nil {
		errs = append(errs, fmt.Errorf("writing report: %w", err))
	}
	return errors.Join(errs...)
}

func (r *Reporter) formatFailure(buf *bytes.Buffer, day, field string, v float64) error {
	err := &models.Error{Kind: models.KindFormattingFailure, Day: day, Err: fmt.Errorf("%s %v cannot be rendered", field, v)}
	r.logger.Error("formatting report value", "day", day, "field", field, "error", err)
	fmt.Fprintf(buf, "Error formatting %s: %v\n", field, err)
	return err
}

// formatTotal prints the shortest exact decimal form, keeping a fractional
// part on non-empty reports ("198.5", "200.0"); an empty report prints "0".
func formatTotal(total float64, days int) string {
	if days == 0 {
		return "0"
	}
	s := strconv.FormatFloat(total, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
