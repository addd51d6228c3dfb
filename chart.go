package modelframe

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/aouyang1/go-modelframe/frame"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each input series must have the same length as
// the input time slice. NaN values render as gaps so series with missing
// points at different rows stay aligned on the shared axis.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				// echarts placeholder for an empty data point
				lineData[i] = append(lineData[i], opts.LineData{Value: "-"})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// LineFit plots the observed column of an augmented frame against one or
// more prediction columns over the frame's time column.
func LineFit(f *frame.Frame, title, timeCol, actualCol string, predCols ...string) (*charts.Line, error) {
	t, err := f.Times(timeCol)
	if err != nil {
		return nil, err
	}

	names := append([]string{actualCol}, predCols...)
	y := make([][]float64, 0, len(names))
	for _, name := range names {
		vals, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		y = append(y, vals)
	}

	return LineTSeries(title, names, t, y), nil
}

// ScatterByCategory plots a float column against a categorical column,
// e.g. daily flight counts by day of week.
func ScatterByCategory(f *frame.Frame, title, catCol, valCol string) (*charts.Scatter, error) {
	cats, err := f.Strings(catCol)
	if err != nil {
		return nil, err
	}
	vals, err := f.Floats(valCol)
	if err != nil {
		return nil, err
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	filteredCats := make([]string, 0, len(cats))
	data := make([]opts.ScatterData, 0, len(vals))
	for i := 0; i < len(vals); i++ {
		if math.IsNaN(vals[i]) {
			continue
		}
		filteredCats = append(filteredCats, cats[i])
		data = append(data, opts.ScatterData{Value: vals[i]})
	}

	scatter.SetXAxis(filteredCats).AddSeries(valCol, data)
	return scatter, nil
}

// RenderPage renders the given charts into a single html page at path.
func RenderPage(path string, charters ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(charters...)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create chart output, %w", err)
	}
	defer file.Close()

	return page.Render(io.MultiWriter(file))
}
