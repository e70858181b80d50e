package util

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HistorySeries is one fitness curve. Values[i] belongs to step i·Stride.
// Series sharing a chart are aligned by slot, so they should share a stride.
type HistorySeries struct {
	Name   string
	Values []float64
	Stride int
}

// PlotHistory renders best-fitness curves as an HTML line chart.
func PlotHistory(w io.Writer, title string, series ...HistorySeries) error {
	var longest HistorySeries
	for _, s := range series {
		if len(s.Values) > len(longest.Values) {
			longest = s
		}
	}
	if len(longest.Values) == 0 {
		return fmt.Errorf("no fitness history to plot for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(series) > 1)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "step",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "best fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	stride := max(longest.Stride, 1)
	xAxis := make([]string, len(longest.Values))
	for i := range xAxis {
		xAxis[i] = strconv.Itoa(i * stride)
	}
	line.SetXAxis(xAxis)

	for _, s := range series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}
	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	return line.Render(w)
}

// PlotHistoryFile renders the chart into the file at path.
func PlotHistoryFile(path, title string, series ...HistorySeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return PlotHistory(f, title, series...)
}
