package impexp

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"networth-cli/internal/forecast"
)

// ForecastRow is one month of a forecast series in CSV form.
type ForecastRow struct {
	Date string  `csv:"date"`
	Low  float64 `csv:"low"`
	Base float64 `csv:"base"`
	High float64 `csv:"high"`
}

// WriteForecastCSV writes a forecast's aggregate series as CSV.
func WriteForecastCSV(w io.Writer, set *forecast.ScenarioSet, dateFormat string) error {
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	rows := make([]*ForecastRow, len(set.Labels))
	for i, label := range set.Labels {
		rows[i] = &ForecastRow{
			Date: label.Format(dateFormat),
			Low:  set.Low[i],
			Base: set.Base[i],
			High: set.High[i],
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing forecast CSV: %w", err)
	}
	return nil
}
