package buem

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// WeatherSeries holds the hourly weather driving one simulation run. It is
// owned by the run and read-only after construction.
type WeatherSeries struct {
	start      time.Time
	theta_o_ns []float64 // outdoor dry-bulb temperature at step n, degree C, [n]
	i_glb_ns   []float64 // global horizontal irradiance at step n, W/m2, [n]
	i_dn_ns    []float64 // direct normal irradiance at step n, W/m2, [n]
	i_dif_ns   []float64 // diffuse horizontal irradiance at step n, W/m2, [n]
}

/*
Construct a weather series from hourly records.

Args:

	start: timestamp of step 0
	theta_o_ns: outdoor temperature, degree C, [n]
	i_glb_ns: global horizontal irradiance, W/m2, [n]
	i_dn_ns: direct normal irradiance, W/m2, [n]
	i_dif_ns: diffuse horizontal irradiance, W/m2, [n]

Notes:

	All series must have the same non-zero length; irradiance must be
	non-negative and every value finite. Timestamp uniformity is implied
	by the single start time and the fixed one-hour step.
*/
func NewWeatherSeries(start time.Time, theta_o_ns, i_glb_ns, i_dn_ns, i_dif_ns []float64) (*WeatherSeries, error) {
	n := len(theta_o_ns)
	if n == 0 {
		return nil, newDataAlignmentError("", "weather series is empty")
	}
	if len(i_glb_ns) != n || len(i_dn_ns) != n || len(i_dif_ns) != n {
		return nil, newDataAlignmentError("",
			"weather series lengths differ: temperature %d, global %d, direct %d, diffuse %d",
			n, len(i_glb_ns), len(i_dn_ns), len(i_dif_ns))
	}
	for i := 0; i < n; i++ {
		if !is_finite(theta_o_ns[i]) || !is_finite(i_glb_ns[i]) || !is_finite(i_dn_ns[i]) || !is_finite(i_dif_ns[i]) {
			return nil, newDataAlignmentError("", "weather record at step %d is not finite", i)
		}
		if i_glb_ns[i] < 0.0 || i_dn_ns[i] < 0.0 || i_dif_ns[i] < 0.0 {
			return nil, newDataAlignmentError("", "negative irradiance at step %d", i)
		}
	}
	return &WeatherSeries{
		start:      start,
		theta_o_ns: theta_o_ns,
		i_glb_ns:   i_glb_ns,
		i_dn_ns:    i_dn_ns,
		i_dif_ns:   i_dif_ns,
	}, nil
}

// Len returns the number of hourly steps.
func (w *WeatherSeries) Len() int { return len(w.theta_o_ns) }

// Start returns the timestamp of step 0.
func (w *WeatherSeries) Start() time.Time { return w.start }

// OutdoorTemperature returns the outdoor temperature series, degree C, [n].
func (w *WeatherSeries) OutdoorTemperature() []float64 { return w.theta_o_ns }

// AverageOutdoorTemperature returns the mean outdoor temperature, degree C.
func (w *WeatherSeries) AverageOutdoorTemperature() float64 {
	var avg float64
	for _, v := range w.theta_o_ns {
		avg += v
	}
	return avg / float64(len(w.theta_o_ns))
}

type WeatherDataRow struct {
	Timestamp   string  `csv:"timestamp"`
	Temperature float64 `csv:"temperature"`
	GHI         float64 `csv:"ghi"`
	DNI         float64 `csv:"dni"`
	DHI         float64 `csv:"dhi"`
}

/*
Load a weather series from a CSV file.

Args:

	file_path: path of the weather CSV file

Returns:

	WeatherSeries

Notes:

	Columns: timestamp (RFC 3339), temperature (degree C), ghi, dni, dhi
	(W/m2). Timestamps must be strictly monotonic with uniform one-hour
	spacing; anything else is a data alignment error, not a warning.
*/
func LoadWeatherFile(file_path string) (*WeatherSeries, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, fmt.Errorf("open weather file: %w", err)
	}
	defer file.Close()

	var rows []*WeatherDataRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse weather file %s: %w", file_path, err)
	}
	if len(rows) == 0 {
		return nil, newDataAlignmentError("", "weather file %s has no rows", file_path)
	}

	start, err := time.Parse(time.RFC3339, rows[0].Timestamp)
	if err != nil {
		return nil, newDataAlignmentError("", "weather row 0 timestamp %q: %v", rows[0].Timestamp, err)
	}

	n := len(rows)
	theta_o_ns := make([]float64, n)
	i_glb_ns := make([]float64, n)
	i_dn_ns := make([]float64, n)
	i_dif_ns := make([]float64, n)

	prev := start.Add(-time.Hour)
	for i, row := range rows {
		ts, err := time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			return nil, newDataAlignmentError("", "weather row %d timestamp %q: %v", i, row.Timestamp, err)
		}
		if ts.Sub(prev) != time.Hour {
			return nil, newDataAlignmentError("",
				"weather rows are not uniformly spaced at one hour: row %d is %s after row %d",
				i, ts.Sub(prev), i-1)
		}
		prev = ts

		theta_o_ns[i] = row.Temperature
		i_glb_ns[i] = row.GHI
		i_dn_ns[i] = row.DNI
		i_dif_ns[i] = row.DHI
	}

	return NewWeatherSeries(start, theta_o_ns, i_glb_ns, i_dn_ns, i_dif_ns)
}

func is_finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
