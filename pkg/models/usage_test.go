package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	s, err := ParseSample("monday", " 34.5 ")
	require.NoError(t, err)
	assert.Equal(t, Sample{Day: "Monday", KWh: 34.5}, s)

	tests := []struct {
		name string
		day  string
		raw  string
	}{
		{"non-numeric", "Monday", "abc"},
		{"negative", "Tuesday", "-1"},
		{"nan", "Wednesday", "NaN"},
		{"inf", "Thursday", "Inf"},
		{"unknown day", "Funday", "10"},
		{"empty", "Friday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSample(tt.day, tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSample), "got %v", err)
		})
	}
}

func TestDailyAverages(t *testing.T) {
	avgs := DailyAverages{
		{Day: "Monday", KWh: 32, Samples: 2},
		{Day: "Sunday", KWh: 26.5, Samples: 2},
	}

	v, ok := avgs.Lookup("Sunday")
	assert.True(t, ok)
	assert.Equal(t, 26.5, v)

	_, ok = avgs.Lookup("Friday")
	assert.False(t, ok)
	assert.Equal(t, 0.0, avgs.Value("Friday"))

	assert.InDelta(t, 58.5, avgs.Total(), 1e-9)
	assert.Equal(t, []string{"Monday", "Sunday"}, avgs.Days())
	assert.Equal(t, 0.0, DailyAverages{}.Total())
}

func TestErrorKinds(t *testing.T) {
	err := &Error{Kind: KindFormattingFailure, Day: "Monday", Err: errors.New("value NaN")}
	assert.True(t, errors.Is(err, ErrFormattingFailure))
	assert.False(t, errors.Is(err, ErrInvalidSample))
	assert.Equal(t, "formatting failure (Monday): value NaN", err.Error())

	joined := errors.Join(errors.New("other"), &Error{Kind: KindInvalidRule})
	assert.True(t, errors.Is(joined, ErrInvalidRule))
}
