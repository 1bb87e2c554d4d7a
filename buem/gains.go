package buem

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// fraction of the internal gains that remains effective while the
// occupants are asleep
const sleeping_factor = 0.5

// GainsSeries holds the exogenous internal heat gains of one building,
// produced by the occupancy collaborator and consumed read-only here.
type GainsSeries struct {
	q_ig_ns     []float64 // appliance/occupant internal gains at step n, W, [n]
	q_elec_ns   []float64 // electricity load dissipated indoors at step n, W, [n]
	occ_away_ns []float64 // fraction of occupants away from home at step n, -, [n]
	occ_slp_ns  []float64 // fraction of occupants asleep at step n, -, [n]
}

/*
Construct a gains series.

Args:

	q_ig_ns: internal gains, W, [n]
	q_elec_ns: electricity load dissipated indoors, W, [n]
	occ_away_ns: away-from-home fraction, -, [n]; nil means always home
	occ_slp_ns: sleeping fraction, -, [n]; nil means always awake

Notes:

	All non-nil series must share the length of q_ig_ns; fractions must
	lie within [0, 1].
*/
func NewGainsSeries(q_ig_ns, q_elec_ns, occ_away_ns, occ_slp_ns []float64) (*GainsSeries, error) {
	n := len(q_ig_ns)
	if n == 0 {
		return nil, newDataAlignmentError("", "gains series is empty")
	}
	if occ_away_ns == nil {
		occ_away_ns = make([]float64, n)
	}
	if occ_slp_ns == nil {
		occ_slp_ns = make([]float64, n)
	}
	if len(q_elec_ns) != n || len(occ_away_ns) != n || len(occ_slp_ns) != n {
		return nil, newDataAlignmentError("",
			"gains series lengths differ: internal %d, electricity %d, away %d, sleeping %d",
			n, len(q_elec_ns), len(occ_away_ns), len(occ_slp_ns))
	}
	for i := 0; i < n; i++ {
		if !is_finite(q_ig_ns[i]) || !is_finite(q_elec_ns[i]) {
			return nil, newDataAlignmentError("", "gains record at step %d is not finite", i)
		}
		if occ_away_ns[i] < 0.0 || occ_away_ns[i] > 1.0 || occ_slp_ns[i] < 0.0 || occ_slp_ns[i] > 1.0 {
			return nil, newDataAlignmentError("", "occupancy fraction at step %d outside [0, 1]", i)
		}
	}
	return &GainsSeries{
		q_ig_ns:     q_ig_ns,
		q_elec_ns:   q_elec_ns,
		occ_away_ns: occ_away_ns,
		occ_slp_ns:  occ_slp_ns,
	}, nil
}

// ZeroGains returns a gains series of n steps with no internal gains.
func ZeroGains(n int) *GainsSeries {
	g, _ := NewGainsSeries(make([]float64, n), make([]float64, n), nil, nil)
	return g
}

// Len returns the number of steps.
func (g *GainsSeries) Len() int { return len(g.q_ig_ns) }

/*
Effective internal gain delivered to the air node.

Returns:

	effective internal gain at step n, W, [n]

Notes:

	q = (q_ig + q_elec) * (presence * (1 - sleeping) + 0.5 * sleeping)
	with presence = 1 - away. Sleeping occupants keep half of the gains
	effective (reduced appliance use, metabolic share retained).
*/
func (g *GainsSeries) EffectiveAirGain() []float64 {
	q_ia_ns := make([]float64, len(g.q_ig_ns))
	for i := range q_ia_ns {
		presence := 1.0 - g.occ_away_ns[i]
		weight := presence*(1.0-g.occ_slp_ns[i]) + sleeping_factor*g.occ_slp_ns[i]
		q_ia_ns[i] = (g.q_ig_ns[i] + g.q_elec_ns[i]) * weight
	}
	return q_ia_ns
}

// ElectricityLoad returns the electricity load series, W, [n].
func (g *GainsSeries) ElectricityLoad() []float64 { return g.q_elec_ns }

type GainsDataRow struct {
	InternalGains float64 `csv:"internal_gains"`
	Electricity   float64 `csv:"electricity"`
	Away          float64 `csv:"away"`
	Sleeping      float64 `csv:"sleeping"`
}

/*
Load a gains series from a CSV file.

Args:

	file_path: path of the gains CSV file

Returns:

	GainsSeries

Notes:

	Columns: internal_gains (W), electricity (W), away (-), sleeping (-).
	One row per hourly step, aligned with the weather file by position.
*/
func LoadGainsFile(file_path string) (*GainsSeries, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, fmt.Errorf("open gains file: %w", err)
	}
	defer file.Close()

	var rows []*GainsDataRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse gains file %s: %w", file_path, err)
	}

	n := len(rows)
	q_ig_ns := make([]float64, n)
	q_elec_ns := make([]float64, n)
	occ_away_ns := make([]float64, n)
	occ_slp_ns := make([]float64, n)
	for i, row := range rows {
		q_ig_ns[i] = row.InternalGains
		q_elec_ns[i] = row.Electricity
		occ_away_ns[i] = row.Away
		occ_slp_ns[i] = row.Sleeping
	}
	return NewGainsSeries(q_ig_ns, q_elec_ns, occ_away_ns, occ_slp_ns)
}
