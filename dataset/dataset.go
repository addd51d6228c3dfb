// Package dataset loads raw flight records and aggregates them into the
// daily count frames the modelling walkthrough runs on. Raw CSV handling
// is delegated to gota, aggregation output is the typed frame the rest of
// the module consumes.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/aouyang1/go-modelframe/event"
	"github.com/aouyang1/go-modelframe/frame"
	"github.com/go-gota/gota/dataframe"
)

var (
	ErrNoRecords     = errors.New("no usable flight records")
	ErrMissingColumn = errors.New("flight records are missing a required column")
	ErrNonMonotonic  = errors.New("date column is not monotonically increasing")
	ErrLenMismatch   = errors.New("column length does not match date column")
)

// column names of the daily counts frame
const (
	ColDate = "date"
	ColN    = "n"
	ColWday = "wday"
	ColTerm = "term"
)

// LoadFlights reads a raw flight record CSV with header into a gota
// dataframe. The records are expected to carry at least year, month, and
// day columns.
func LoadFlights(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("unable to open flight records, %w", err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file, dataframe.HasHeader(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("unable to parse flight records, %w", df.Err)
	}
	return df, nil
}

// DailyCounts aggregates raw flight records into one row per calendar day
// with columns date, n, wday, and term sorted by date. Records with
// unparseable date fields are skipped.
func DailyCounts(df dataframe.DataFrame) (*frame.Frame, error) {
	years := df.Col("year")
	if years.Err != nil {
		return nil, fmt.Errorf("column year, %w", ErrMissingColumn)
	}
	months := df.Col("month")
	if months.Err != nil {
		return nil, fmt.Errorf("column month, %w", ErrMissingColumn)
	}
	days := df.Col("day")
	if days.Err != nil {
		return nil, fmt.Errorf("column day, %w", ErrMissingColumn)
	}

	counts := make(map[time.Time]float64)
	for i := 0; i < df.Nrow(); i++ {
		y, err := years.Elem(i).Int()
		if err != nil {
			continue
		}
		mo, err := months.Elem(i).Int()
		if err != nil {
			continue
		}
		d, err := days.Elem(i).Int()
		if err != nil {
			continue
		}
		counts[time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)]++
	}
	if len(counts) == 0 {
		return nil, ErrNoRecords
	}

	dates := make([]time.Time, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	n := make([]float64, 0, len(dates))
	for _, date := range dates {
		n = append(n, counts[date])
	}

	return NewDaily(dates, n)
}

// NewDaily builds a daily counts frame from parallel date and count
// slices, deriving the wday and term columns. Dates must be strictly
// increasing.
func NewDaily(dates []time.Time, n []float64) (*frame.Frame, error) {
	if len(dates) == 0 {
		return nil, ErrNoRecords
	}
	if len(n) != len(dates) {
		return nil, fmt.Errorf("have %d counts for %d dates, %w", len(n), len(dates), ErrLenMismatch)
	}

	var lastDate time.Time
	for i, date := range dates {
		if !date.After(lastDate) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastDate = date
	}

	wdays := make([]string, 0, len(dates))
	terms := make([]string, 0, len(dates))
	for _, date := range dates {
		wdays = append(wdays, Weekday(date))
		terms = append(terms, Term(date))
	}

	return frame.New(
		frame.Times(ColDate, dates),
		frame.Floats(ColN, n),
		frame.Strings(ColWday, wdays),
		frame.Strings(ColTerm, terms),
	)
}

// FlagEvents returns a new frame with an added 0/1 float column marking
// the rows whose date falls inside any of the given events.
func FlagEvents(f *frame.Frame, name, dateCol string, events []event.Event) (*frame.Frame, error) {
	dates, err := f.Times(dateCol)
	if err != nil {
		return nil, err
	}

	flags := make([]float64, len(dates))
	for i, date := range dates {
		if event.InAny(date, events) {
			flags[i] = 1.0
		}
	}
	return f.WithColumn(frame.Floats(name, flags))
}
