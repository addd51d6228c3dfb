package frame

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testData := map[string]struct {
		cols []Column
		err  error
	}{
		"no columns": {
			err: ErrNoColumns,
		},
		"duplicate name": {
			cols: []Column{
				Floats("n", []float64{1, 2}),
				Floats("n", []float64{3, 4}),
			},
			err: ErrDuplicateColumn,
		},
		"length mismatch": {
			cols: []Column{
				Floats("n", []float64{1, 2}),
				Strings("wday", []string{"Mon"}),
			},
			err: ErrColumnLenMismatch,
		},
		"valid": {
			cols: []Column{
				Floats("n", []float64{1, 2}),
				Strings("wday", []string{"Mon", "Tue"}),
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			f, err := New(td.cols...)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, 2, f.NumRows())
			assert.Equal(t, []string{"n", "wday"}, f.Names())
		})
	}
}

func TestFrameAccessors(t *testing.T) {
	f, err := New(
		Times("date", []time.Time{
			time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2013, 1, 2, 0, 0, 0, 0, time.UTC),
		}),
		Floats("n", []float64{842, 943}),
		Strings("wday", []string{"Tue", "Wed"}),
	)
	require.Nil(t, err)

	n, err := f.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{842, 943}, n)

	wday, err := f.Strings("wday")
	require.Nil(t, err)
	assert.Equal(t, []string{"Tue", "Wed"}, wday)

	dates, err := f.Times("date")
	require.Nil(t, err)
	assert.Equal(t, time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), dates[0])

	_, err = f.Floats("missing")
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = f.Floats("wday")
	assert.ErrorIs(t, err, ErrColumnKindMismatch)

	_, err = f.Strings("n")
	assert.ErrorIs(t, err, ErrColumnKindMismatch)

	_, err = f.Times("n")
	assert.ErrorIs(t, err, ErrColumnKindMismatch)
}

func TestFrameWithColumn(t *testing.T) {
	f, err := New(
		Floats("n", []float64{1, 2}),
		Strings("wday", []string{"Mon", "Tue"}),
	)
	require.Nil(t, err)

	appended, err := f.WithColumn(Floats("pred", []float64{1.5, 2.5}))
	require.Nil(t, err)
	assert.Equal(t, []string{"n", "wday", "pred"}, appended.Names())
	assert.Equal(t, []string{"n", "wday"}, f.Names())

	// collision replaces in place keeping column order
	replaced, err := appended.WithColumn(Floats("n", []float64{10, 20}))
	require.Nil(t, err)
	assert.Equal(t, []string{"n", "wday", "pred"}, replaced.Names())

	n, err := replaced.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{10, 20}, n)

	// original untouched
	n, err = appended.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 2}, n)

	_, err = f.WithColumn(Floats("pred", []float64{1}))
	assert.ErrorIs(t, err, ErrColumnLenMismatch)
}

func TestFrameFilter(t *testing.T) {
	f, err := New(
		Floats("n", []float64{1, 2, 3, 4}),
		Strings("wday", []string{"Mon", "Tue", "Wed", "Thu"}),
	)
	require.Nil(t, err)

	out := f.Filter(func(i int) bool { return i%2 == 0 })
	assert.Equal(t, 2, out.NumRows())

	n, err := out.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 3}, n)

	wday, err := out.Strings("wday")
	require.Nil(t, err)
	assert.Equal(t, []string{"Mon", "Wed"}, wday)

	assert.Equal(t, 4, f.NumRows())
}

func TestFrameImmutableColumns(t *testing.T) {
	vals := []float64{1, 2}
	f, err := New(Floats("n", vals))
	require.Nil(t, err)

	vals[0] = 99
	n, err := f.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 2}, n)

	// mutating the returned slice does not touch the frame
	n[0] = 42
	again, err := f.Floats("n")
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 2}, again)
}

func TestFrameMarshalJSON(t *testing.T) {
	f, err := New(
		Floats("n", []float64{1, 2}),
		Strings("wday", []string{"Mon", "Tue"}),
	)
	require.Nil(t, err)

	out, err := json.Marshal(f)
	require.Nil(t, err)

	var decoded map[string]any
	require.Nil(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded, 2)
	assert.Contains(t, decoded, "n")
	assert.Contains(t, decoded, "wday")
}
