package buem

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// HourlyRecord is one output row of the hourly result file.
type HourlyRecord struct {
	Timestamp      string  `csv:"timestamp"`
	Building       string  `csv:"building"`
	OutdoorTemp    float64 `csv:"theta_o"`
	AirTemp        float64 `csv:"theta_air"`
	SurfaceTemp    float64 `csv:"theta_s"`
	MassTemp       float64 `csv:"theta_m"`
	Heating        float64 `csv:"q_heating"`
	Cooling        float64 `csv:"q_cooling"`
	SolarWindow    float64 `csv:"q_sol_window"`
	SolarOpaque    float64 `csv:"q_sol_opaque"`
	InternalGains  float64 `csv:"q_internal"`
	ComfortLower   float64 `csv:"theta_lower"`
	ComfortUpper   float64 `csv:"theta_upper"`
}

// Recorder collects the hourly rows of one or more buildings and writes
// them as a single CSV file.
type Recorder struct {
	rows []*HourlyRecord
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

/*
Record the hourly rows of one solved building.

Args:

	d: demand series of the building
	w: weather series of the run
	sol: solar gain series of the building
	q_int_ns: effective internal gain at step n, W, [n]
	band: comfort band of the run
*/
func (r *Recorder) Record(d *DemandSeries, w *WeatherSeries, sol *SolarGains, q_int_ns []float64, band *ComfortBand) {
	theta_o_ns := w.OutdoorTemperature()
	for i := 0; i < d.Len(); i++ {
		r.rows = append(r.rows, &HourlyRecord{
			Timestamp:     w.Start().Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			Building:      d.Building(),
			OutdoorTemp:   theta_o_ns[i],
			AirTemp:       d.theta_air_ns[i],
			SurfaceTemp:   d.theta_s_ns[i],
			MassTemp:      d.theta_m_ns[i],
			Heating:       d.q_h_ns[i],
			Cooling:       d.q_c_ns[i],
			SolarWindow:   sol.Window()[i],
			SolarOpaque:   sol.Opaque()[i],
			InternalGains: q_int_ns[i],
			ComfortLower:  band.Lower(i),
			ComfortUpper:  band.Upper(i),
		})
	}
}

// Rows returns the collected rows.
func (r *Recorder) Rows() []*HourlyRecord { return r.rows }

// WriteCSV writes the collected rows to a CSV file.
func (r *Recorder) WriteCSV(file_path string) error {
	file, err := os.Create(file_path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&r.rows, file); err != nil {
		return fmt.Errorf("write result file %s: %w", file_path, err)
	}
	return nil
}

// SummaryRecord is one output row of the per-building summary file.
type SummaryRecord struct {
	BuildingID       string  `csv:"building"`
	HeatingEnergy    float64 `csv:"heating_kwh"`
	CoolingEnergy    float64 `csv:"cooling_kwh"`
	PeakHeating      float64 `csv:"peak_heating_w"`
	PeakCooling      float64 `csv:"peak_cooling_w"`
	MeanAirTemp      float64 `csv:"mean_theta_air"`
	MinAirTemp       float64 `csv:"min_theta_air"`
	MaxAirTemp       float64 `csv:"max_theta_air"`
	HoursOutsideBand int     `csv:"hours_outside_band"`
}

/*
Write per-building summaries to a CSV file.

Args:

	file_path: path of the summary CSV file
	summaries: one summary per solved building
*/
func WriteSummaryCSV(file_path string, summaries []DemandSummary) error {
	rows := make([]*SummaryRecord, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, &SummaryRecord{
			BuildingID:       s.Building,
			HeatingEnergy:    s.HeatingEnergy,
			CoolingEnergy:    s.CoolingEnergy,
			PeakHeating:      s.PeakHeating,
			PeakCooling:      s.PeakCooling,
			MeanAirTemp:      s.MeanAirTemperature,
			MinAirTemp:       s.MinAirTemperature,
			MaxAirTemp:       s.MaxAirTemperature,
			HoursOutsideBand: s.HoursOutsideBand,
		})
	}

	file, err := os.Create(file_path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("write summary file %s: %w", file_path, err)
	}
	return nil
}
