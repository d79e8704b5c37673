package impact

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gnta-research/tourism-impact/monthseries"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// month/value combination. Every series in y must have the same length as the
// input month slice. NaN values are skipped.
func LineTSeries(title string, seriesName []string, months []time.Time, y [][]float64) *charts.Line {
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
				lineData[i] = append(lineData[i], opts.LineData{})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	xAxis := make([]string, 0, len(months))
	for _, m := range months {
		xAxis = append(xAxis, m.Format("2006-01"))
	}

	line = line.SetXAxis(xAxis)
	for i, name := range seriesName {
		line = line.AddSeries(name, lineData[i])
	}

	return line
}

// LineCounterfactual plots the observed pandemic months against the projected
// counterfactual path with its credible bounds.
func LineCounterfactual(actual *monthseries.Series, counterfactual []PeriodForecast) *charts.Line {
	months := make([]time.Time, 0, len(counterfactual))
	median := make([]float64, 0, len(counterfactual))
	upper := make([]float64, 0, len(counterfactual))
	lower := make([]float64, 0, len(counterfactual))
	for _, p := range counterfactual {
		months = append(months, p.Month)
		median = append(median, p.Median)
		upper = append(upper, p.Upper)
		lower = append(lower, p.Lower)
	}

	return LineTSeries(
		"Arrivals: actual vs counterfactual",
		[]string{"Actual", "Counterfactual", "Upper", "Lower"},
		months,
		[][]float64{actual.Values(), median, upper, lower},
	)
}

// LineArrivalsLoss plots the per-month lost-arrivals estimate with bounds.
func LineArrivalsLoss(res *ArrivalsResult) *charts.Line {
	months := make([]time.Time, 0, len(res.Loss.Periods))
	median := make([]float64, 0, len(res.Loss.Periods))
	upper := make([]float64, 0, len(res.Loss.Periods))
	lower := make([]float64, 0, len(res.Loss.Periods))
	for _, p := range res.Loss.Periods {
		months = append(months, p.Month)
		median = append(median, p.Median)
		upper = append(upper, p.Upper)
		lower = append(lower, p.Lower)
	}

	return LineTSeries(
		fmt.Sprintf("Lost arrivals per month (%.0f%% interval)", res.Loss.Level*100),
		[]string{"Median", "Upper", "Lower"},
		months,
		[][]float64{median, upper, lower},
	)
}

// LineTransactionsLoss plots the nowcast against the counterfactual forecast
// for the transaction-volume leg.
func LineTransactionsLoss(res *TransactionsResult) *charts.Line {
	months := make([]time.Time, 0, len(res.Loss.Periods))
	nowcast := make([]float64, 0, len(res.Loss.Periods))
	forecasted := make([]float64, 0, len(res.Loss.Periods))
	for _, p := range res.Loss.Periods {
		months = append(months, p.Month)
		nowcast = append(nowcast, p.Nowcast)
		forecasted = append(forecasted, p.Forecast)
	}

	return LineTSeries(
		"Transaction volume: counterfactual vs nowcast",
		[]string{"Counterfactual", "Nowcast"},
		months,
		[][]float64{forecasted, nowcast},
	)
}

// RenderReport writes the full HTML report: the arrivals history, the
// counterfactual comparison, and the per-month loss estimates for both legs.
// The transactions result may be nil when only the arrivals leg was run.
func RenderReport(path string, arrivals *monthseries.Series, arrRes *ArrivalsResult, txnRes *TransactionsResult, opt *Options) error {
	opt, err := opt.Validate()
	if err != nil {
		return err
	}

	observed, err := arrivals.Window(opt.PandemicStart, arrivals.End().AddDate(0, 1, 0))
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.AddCharts(
		LineTSeries("Monthly arrivals", []string{"Arrivals"}, arrivals.Months(), [][]float64{arrivals.Values()}),
		LineCounterfactual(observed, arrRes.Counterfactual),
		LineArrivalsLoss(arrRes),
	)
	if txnRes != nil {
		page.AddCharts(LineTransactionsLoss(txnRes))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(file)
}
