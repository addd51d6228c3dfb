package dataset

import (
	"math/rand"
	"time"

	"github.com/aouyang1/go-modelframe/event"
	"github.com/aouyang1/go-modelframe/frame"
	"gonum.org/v1/gonum/floats"
)

// GenerateDates creates n consecutive calendar days starting at start,
// truncated to midnight UTC.
func GenerateDates(n int, start time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.AddDate(0, 0, i))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) SetConst(t []time.Time, val float64, start, end time.Time) Series {
	for i := 0; i < len(s); i++ {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = val
		}
	}
	return s
}

func GenerateConst(n int, val float64) Series {
	y := make([]float64, n)
	floats.AddConst(val, y)
	return Series(y)
}

// GenerateWeekdayEffect produces a per day offset keyed by weekday,
// emulating the strong day of week pattern in daily flight counts.
func GenerateWeekdayEffect(t []time.Time, effects map[time.Weekday]float64) Series {
	y := make([]float64, len(t))
	for i := 0; i < len(t); i++ {
		y[i] = effects[t[i].Weekday()]
	}
	return Series(y)
}

// GenerateTermEffect produces a per day offset keyed by school term label.
func GenerateTermEffect(t []time.Time, effects map[string]float64) Series {
	y := make([]float64, len(t))
	for i := 0; i < len(t); i++ {
		y[i] = effects[Term(t[i])]
	}
	return Series(y)
}

// GenerateEventDip adds depth to every day falling inside one of the
// events. Negative depths model the travel drops around major holidays.
func GenerateEventDip(t []time.Time, events []event.Event, depth float64) Series {
	y := make([]float64, len(t))
	for i := 0; i < len(t); i++ {
		if event.InAny(t[i], events) {
			y[i] = depth
		}
	}
	return Series(y)
}

func GenerateNoise(t []time.Time, scale float64) Series {
	y := make([]float64, len(t))
	for i := 0; i < len(t); i++ {
		y[i] = rand.NormFloat64() * scale
	}
	return Series(y)
}

// SimulateDailyCounts builds a synthetic daily counts frame with a weekday
// pattern, school term shifts, holiday dips, and gaussian noise. Useful
// for examples and chart smoke tests where real flight records are not
// available.
func SimulateDailyCounts(n int, start time.Time) (*frame.Frame, error) {
	t := GenerateDates(n, start)

	holidays := event.USHolidays(t[0], t[len(t)-1], 24*time.Hour, 24*time.Hour)

	y := make(Series, n)
	y.Add(GenerateConst(n, 830.0)).
		Add(GenerateWeekdayEffect(t, map[time.Weekday]float64{
			time.Monday:    45.0,
			time.Tuesday:   52.0,
			time.Wednesday: 51.0,
			time.Thursday:  55.0,
			time.Friday:    58.0,
			time.Saturday:  -110.0,
			time.Sunday:    12.0,
		})).
		Add(GenerateTermEffect(t, map[string]float64{
			TermSpring: 0.0,
			TermSummer: 28.0,
			TermFall:   -12.0,
		})).
		Add(GenerateEventDip(t, holidays, -85.0)).
		Add(GenerateNoise(t, 9.0))

	return NewDaily(t, y)
}
