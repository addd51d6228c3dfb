package dataset

import (
	"testing"
	"time"

	"github.com/aouyang1/go-modelframe/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDates(t *testing.T) {
	dates := GenerateDates(3, time.Date(2013, 1, 1, 13, 45, 0, 0, time.UTC))

	require.Len(t, dates, 3)
	assert.Equal(t, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2013, 1, 3, 0, 0, 0, 0, time.UTC), dates[2])
}

func TestSeries(t *testing.T) {
	dates := GenerateDates(7, time.Date(2013, 1, 7, 0, 0, 0, 0, time.UTC))

	y := make(Series, len(dates))
	y.Add(GenerateConst(len(dates), 100.0)).
		Add(GenerateWeekdayEffect(dates, map[time.Weekday]float64{
			time.Saturday: -50.0,
		})).
		SetConst(dates, 0.0, dates[1], dates[2])

	// Mon..Sun starting 2013-01-07
	assert.Equal(t, []float64{100, 0, 100, 100, 100, 50, 100}, []float64(y))
}

func TestGenerateEventDip(t *testing.T) {
	dates := GenerateDates(5, time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC))
	events := event.IndependenceDay(dates[0], dates[len(dates)-1], 0, 0)
	require.Len(t, events, 1)

	y := GenerateEventDip(dates, events, -85.0)
	assert.Equal(t, []float64{0, 0, -85, 0, 0}, []float64(y))
}

func TestSimulateDailyCounts(t *testing.T) {
	f, err := SimulateDailyCounts(365, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Nil(t, err)

	assert.Equal(t, 365, f.NumRows())
	assert.Equal(t, []string{ColDate, ColN, ColWday, ColTerm}, f.Names())

	n, err := f.Floats(ColN)
	require.Nil(t, err)
	for _, val := range n {
		assert.Greater(t, val, 0.0)
	}
}
