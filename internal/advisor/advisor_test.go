package advisor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/energyopt/pkg/models"
)

const (
	mondayMsg = "Consider using energy saving mode on appliances on Monday."
	sundayMsg = "Reduce the use of heating/cooling systems on Sunday."
)

func newDefault(t *testing.T) *Advisor {
	t.Helper()
	a, err := New(models.DefaultRules())
	require.NoError(t, err)
	return a
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name string
		avgs models.DailyAverages
		want []models.Recommendation
	}{
		{
			name: "monday only",
			avgs: models.DailyAverages{{Day: "Monday", KWh: 32}, {Day: "Sunday", KWh: 20}, {Day: "Friday", KWh: 29}},
			want: []models.Recommendation{mondayMsg},
		},
		{
			name: "both",
			avgs: models.DailyAverages{{Day: "Monday", KWh: 32}, {Day: "Sunday", KWh: 26.5}},
			want: []models.Recommendation{mondayMsg, sundayMsg},
		},
		{
			name: "thresholds are exclusive",
			avgs: models.DailyAverages{{Day: "Monday", KWh: 30}, {Day: "Sunday", KWh: 25}},
			want: []models.Recommendation{Fallback},
		},
		{
			name: "missing days count as zero",
			avgs: models.DailyAverages{{Day: "Tuesday", KWh: 500}},
			want: []models.Recommendation{Fallback},
		},
		{
			name: "empty",
			avgs: models.DailyAverages{},
			want: []models.Recommendation{Fallback},
		},
	}

	a := newDefault(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Advise(tt.avgs))
		})
	}
}

func TestAdvise_CustomTableOrder(t *testing.T) {
	a, err := New([]models.Rule{
		{Day: "sunday", Threshold: 1, Message: "first"},
		{Day: "Wednesday", Threshold: 1, Message: "second"},
	})
	require.NoError(t, err)

	got := a.Advise(models.DailyAverages{{Day: "Wednesday", KWh: 2}, {Day: "Sunday", KWh: 2}})
	assert.Equal(t, []models.Recommendation{"first", "second"}, got)
	assert.Equal(t, "Sunday", a.Rules()[0].Day)
}

func TestNew_InvalidRules(t *testing.T) {
	tests := []models.Rule{
		{Day: "Someday", Threshold: 1, Message: "x"},
		{Day: "Monday", Threshold: -1, Message: "x"},
		{Day: "Monday", Threshold: math.Inf(1), Message: "x"},
		{Day: "Monday", Threshold: 1, Message: "  "},
	}
	for _, r := range tests {
		_, err := New([]models.Rule{r})
		require.Error(t, err, "%+v", r)
		assert.True(t, errors.Is(err, models.ErrInvalidRule), "%+v", r)
	}
}
