package frame

import "time"

// Kind identifies the scalar type held by a column.
type Kind int

const (
	Float64 Kind = iota
	String
	Time
)

func (k Kind) String() string {
	switch k {
	case Float64:
		return "float64"
	case String:
		return "string"
	case Time:
		return "time"
	}
	return "unknown"
}

// Column is a named sequence of scalar values of a single kind. Values are
// copied on construction so a column never aliases caller owned slices.
type Column struct {
	name string
	kind Kind

	floats  []float64
	strings []string
	times   []time.Time
}

// Floats creates a Float64 column from a copy of vals.
func Floats(name string, vals []float64) Column {
	c := Column{name: name, kind: Float64, floats: make([]float64, len(vals))}
	copy(c.floats, vals)
	return c
}

// Strings creates a String column from a copy of vals.
func Strings(name string, vals []string) Column {
	c := Column{name: name, kind: String, strings: make([]string, len(vals))}
	copy(c.strings, vals)
	return c
}

// Times creates a Time column from a copy of vals.
func Times(name string, vals []time.Time) Column {
	c := Column{name: name, kind: Time, times: make([]time.Time, len(vals))}
	copy(c.times, vals)
	return c
}

// Name returns the column name.
func (c Column) Name() string {
	return c.name
}

// Kind returns the scalar kind of the column.
func (c Column) Kind() Kind {
	return c.kind
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	switch c.kind {
	case Float64:
		return len(c.floats)
	case String:
		return len(c.strings)
	case Time:
		return len(c.times)
	}
	return 0
}

func (c Column) copy() Column {
	switch c.kind {
	case Float64:
		return Floats(c.name, c.floats)
	case String:
		return Strings(c.name, c.strings)
	case Time:
		return Times(c.name, c.times)
	}
	return Column{name: c.name, kind: c.kind}
}

func (c Column) take(rows []int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case Float64:
		out.floats = make([]float64, 0, len(rows))
		for _, i := range rows {
			out.floats = append(out.floats, c.floats[i])
		}
	case String:
		out.strings = make([]string, 0, len(rows))
		for _, i := range rows {
			out.strings = append(out.strings, c.strings[i])
		}
	case Time:
		out.times = make([]time.Time, 0, len(rows))
		for _, i := range rows {
			out.times = append(out.times, c.times[i])
		}
	}
	return out
}
