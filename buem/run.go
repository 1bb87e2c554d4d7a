package buem

import (
	"log"
	"runtime"
	"sync"
)

// Simulation solves the hourly demand of one building under one weather and
// gains series. It is cheap to construct; the work happens in Run.
type Simulation struct {
	envelope *BuildingEnvelope
	weather  *WeatherSeries
	gains    *GainsSeries
	config   RunConfig
	backend  Backend

	// filled by Run for the recorder
	solar    *SolarGains
	q_int_ns []float64
}

/*
Construct a simulation.

Args:

	e: aggregated building envelope
	w: weather series
	g: gains series, nil for a building without internal gains
	cfg: run configuration
	backend: linear program solver, nil picks the built-in simplex;
	         unused in band mode

Returns:

	Simulation
*/
func NewSimulation(e *BuildingEnvelope, w *WeatherSeries, g *GainsSeries, cfg RunConfig, backend Backend) *Simulation {
	if g == nil {
		g = ZeroGains(w.Len())
	}
	if backend == nil {
		backend = NewSimplexBackend()
	}
	return &Simulation{envelope: e, weather: w, gains: g, config: cfg, backend: backend}
}

/*
Solve the demand of the building.

Returns:

	DemandSeries over the full weather horizon

Notes:

	All alignment and configuration checks run before the first step, so
	a failing run does no partial work. The result series is scanned for
	non-finite values before it is returned; a NaN anywhere is an error,
	never a silent output.
*/
func (s *Simulation) Run() (*DemandSeries, error) {
	building := s.envelope.Building()
	n := s.weather.Len()

	if s.gains.Len() != n {
		return nil, newDataAlignmentError(building,
			"gains series has %d steps, weather has %d", s.gains.Len(), n)
	}
	if err := s.config.validate(); err != nil {
		return nil, err
	}

	band, err := NewConstantComfortBand(s.config.ComfortLower, s.config.ComfortUpper)
	if err != nil {
		return nil, err
	}
	if err := band.check_horizon(n); err != nil {
		return nil, err
	}

	s.solar = calc_solar_gains(s.envelope, s.weather, s.envelope.Latitude(), s.envelope.Longitude())
	s.q_int_ns = s.gains.EffectiveAirGain()

	nw := NewThermalNetwork(s.envelope)

	theta_m_init := band.Midpoint(0)
	if s.config.InitialTemperature != nil {
		theta_m_init = *s.config.InitialTemperature
	}

	var phi_hc_ns []float64
	var res_ns []StepResult
	switch ControlModeFromString(s.config.Mode) {
	case ModeBand:
		phi_hc_ns, res_ns, err = run_band_control(
			nw, s.weather.OutdoorTemperature(), s.q_int_ns, s.solar, band, s.config.limits(), theta_m_init)
	case ModeHorizon:
		phi_hc_ns, res_ns, err = run_horizon(
			nw, s.weather.OutdoorTemperature(), s.q_int_ns, s.solar, band, s.config.limits(), theta_m_init,
			s.config.horizonOptions(), s.backend)
	}
	if err != nil {
		return nil, err
	}

	d := NewDemandSeries(building, band, phi_hc_ns, res_ns)
	if err := d.check_finite(); err != nil {
		return nil, err
	}
	return d, nil
}

// Record appends the hourly rows of a completed run to a recorder. Run must
// have succeeded first.
func (s *Simulation) Record(r *Recorder, d *DemandSeries) {
	band, _ := NewConstantComfortBand(s.config.ComfortLower, s.config.ComfortUpper)
	r.Record(d, s.weather, s.solar, s.q_int_ns, band)
}

// BatchItem couples one building with its gains series for a batch run. The
// weather and the run configuration are shared across the batch.
type BatchItem struct {
	Envelope *BuildingEnvelope
	Gains    *GainsSeries // nil means no internal gains
}

// BatchResult is the outcome of one building in a batch. Exactly one of
// Demand and Err is set; Sim is the completed simulation, kept for the
// recorder.
type BatchResult struct {
	Building string
	Demand   *DemandSeries
	Sim      *Simulation
	Err      error
}

/*
Solve a batch of buildings concurrently.

Args:

	items: buildings with their gains series
	w: weather series shared by the batch
	cfg: run configuration shared by the batch
	backend: linear program solver, nil picks the built-in simplex

Returns:

	one BatchResult per item, in item order

Notes:

	One building failing does not stop the others; the caller decides
	whether a partial batch is acceptable. Workers defaults to the number
	of CPUs.
*/
func RunBatch(items []BatchItem, w *WeatherSeries, cfg RunConfig, backend Backend) []BatchResult {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]BatchResult, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for wk := 0; wk < workers; wk++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				item := items[idx]
				sim := NewSimulation(item.Envelope, w, item.Gains, cfg, backend)
				d, err := sim.Run()
				if err != nil {
					log.Printf("building %s failed: %v", item.Envelope.Building(), err)
				}
				results[idx] = BatchResult{Building: item.Envelope.Building(), Demand: d, Sim: sim, Err: err}
			}
		}()
	}

	for idx := range items {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}
