package report

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/energyopt/pkg/models"
)

var exampleWeek = models.DailyAverages{
	{Day: "Monday", KWh: 32, Samples: 2},
	{Day: "Tuesday", KWh: 27, Samples: 2},
	{Day: "Wednesday", KWh: 23, Samples: 2},
	{Day: "Thursday", KWh: 26, Samples: 2},
	{Day: "Friday", KWh: 32, Samples: 2},
	{Day: "Saturday", KWh: 32, Samples: 2},
	{Day: "Sunday", KWh: 26.5, Samples: 2},
}

var exampleRecs = []models.Recommendation{
	"Consider using energy saving mode on appliances on Monday.",
	"Reduce the use of heating/cooling systems on Sunday.",
}

func TestWrite_ExampleWeek(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Write(exampleWeek, exampleRecs))

	want := `Total weekly energy consumption: 198.5 kWh
Average daily consumption:
Monday: 32.00 kWh
Tuesday: 27.00 kWh
Wednesday: 23.00 kWh
Thursday: 26.00 kWh
Friday: 32.00 kWh
Saturday: 32.00 kWh
Sunday: 26.50 kWh

Personalized Recommendations:
- Consider using energy saving mode on appliances on Monday.
- Reduce the use of heating/cooling systems on Sunday.
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Write(models.DailyAverages{}, []models.Recommendation{"Your energy usage is optimal. Keep it up!"}))

	want := `Total weekly energy consumption: 0 kWh
Average daily consumption:

Personalized Recommendations:
- Your energy usage is optimal. Keep it up!
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_CostLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, WithRate(0.2)).Write(exampleWeek, exampleRecs))
	assert.Contains(t, buf.String(), "Total weekly energy consumption: 198.5 kWh\nEstimated weekly cost: $39.70\n")

	buf.Reset()
	require.NoError(t, New(&buf).Write(exampleWeek, exampleRecs))
	assert.NotContains(t, buf.String(), "Estimated weekly cost")
}

func TestWrite_FormattingFailureContinues(t *testing.T) {
	avgs := models.DailyAverages{
		{Day: "Monday", KWh: 10, Samples: 1},
		{Day: "Tuesday", KWh: math.NaN(), Samples: 1},
		{Day: "Wednesday", KWh: 20, Samples: 1},
	}

	var buf bytes.Buffer
	err := New(&buf).Write(avgs, []models.Recommendation{"tip"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrFormattingFailure))

	out := buf.String()
	assert.Contains(t, out, "Error formatting total")
	assert.Contains(t, out, "Monday: 10.00 kWh\n")
	assert.Contains(t, out, "Error formatting average: formatting failure (Tuesday)")
	assert.Contains(t, out, "Wednesday: 20.00 kWh\n")
	assert.Contains(t, out, "- tip\n")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWrite_SinkError(t *testing.T) {
	err := New(failingWriter{}).Write(exampleWeek, exampleRecs)
	assert.ErrorContains(t, err, "writing report: sink closed")
	assert.False(t, errors.Is(err, models.ErrFormattingFailure))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "0", formatTotal(0, 0))
	assert.Equal(t, "200.0", formatTotal(200, 7))
	assert.Equal(t, "198.5", formatTotal(198.5, 7))
	assert.Equal(t, "0.1", formatTotal(0.1, 1))
}
