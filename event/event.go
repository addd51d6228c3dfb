// Package event describes named time spans such as holiday windows that a
// daily series analysis may flag, annotate, or exclude before refitting.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrStartAfterEnd = errors.New("event start time is after end time")
	ErrUnsetTime     = errors.New("unset event start or end time")
	ErrNoEventName   = errors.New("no event name")
)

// Event represents a time span to treat separately from the rest of the
// series.
type Event struct {
	Name  string
	Start time.Time
	End   time.Time
}

func NewEvent(name string, start, end time.Time) Event {
	return Event{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (e *Event) Valid() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrUnsetTime
	}
	if e.Start.After(e.End) {
		return ErrStartAfterEnd
	}
	if e.Name == "" {
		return ErrNoEventName
	}
	return nil
}

// Contains reports whether t falls inside the event span. The start is
// inclusive and the end exclusive.
func (e *Event) Contains(t time.Time) bool {
	return !t.Before(e.Start) && t.Before(e.End)
}

// InAny reports whether t falls inside any of the given events.
func InAny(t time.Time, events []Event) bool {
	for i := range events {
		if events[i].Contains(t) {
			return true
		}
	}
	return false
}

func Christmas(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.ChristmasDay, start, end, durBefore, durAfter)
}

func Thanksgiving(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.ThanksgivingDay, start, end, durBefore, durAfter)
}

func NewYears(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.NewYear, start, end, durBefore, durAfter)
}

func IndependenceDay(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.IndependenceDay, start, end, durBefore, durAfter)
}

// USHolidays returns events for the major US holidays observed between
// start and end, each padded by the given durations.
func USHolidays(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	var events []Event
	for _, hol := range []*cal.Holiday{
		us.NewYear,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	} {
		events = append(events, Holiday(hol, start, end, durBefore, durAfter)...)
	}
	return events
}

// Holiday generates one event per occurrence of the holiday between start
// and end. The event spans the observed day padded by durBefore and
// durAfter.
func Holiday(hol *cal.Holiday, start, end time.Time, durBefore, durAfter time.Duration) []Event {
	startLoc := start.Location()

	events := []Event{}
	for i := start.Year(); i <= end.Year(); i++ {
		_, observed := hol.Calc(i)
		_, offset := observed.Zone()
		_, startOffset := start.Zone()

		observed = observed.Add(time.Duration(offset) * time.Second).In(startLoc).Add(time.Duration(-startOffset) * time.Second)

		if (observed.After(start) || observed.Equal(start)) && (observed.Before(end) || observed.Equal(end)) {
			events = append(events, Event{
				Name:  strings.ReplaceAll(fmt.Sprintf("%s_%d", hol.Name, i), " ", "_"),
				Start: observed.Add(-durBefore),
				End:   observed.Add(24 * time.Hour).Add(durAfter),
			})
		}
	}
	return events
}
