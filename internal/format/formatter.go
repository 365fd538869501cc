// Package format turns telemetry snapshots into the display strings shown by
// the panel. Formatting is pure and stateless; it is safe to call on every
// snapshot arrival.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// Fallback tokens. Fields intentionally differ in which one they use.
const (
	NotAvailable = "N/A"
	NoValue      = "--"
)

// Readout is the formatted result for a single snapshot
type Readout struct {
	SubjectID int64
	Values    map[model.FieldID]string
}

// Value returns the display string for id, or NoValue when the readout has
// nothing for it.
func (r Readout) Value(id model.FieldID) string {
	if v, ok := r.Values[id]; ok {
		return v
	}
	return NoValue
}

// Format maps a snapshot to per-field display strings
func Format(subjectID int64, s model.Snapshot) Readout {
	st := s.State

	values := map[model.FieldID]string{
		model.FieldCadence:  fixedOr(st.Cadence, 0, NotAvailable),
		model.FieldDraft:    fixedOr(st.Draft, 0, NotAvailable),
		model.FieldHR:       heartRate(st.Heartrate),
		model.FieldPower:    fixedOr(st.Power, 0, NotAvailable),
		model.FieldSpeed:    fixedOr(st.Speed, 1, NotAvailable),
		model.FieldWKG:      wattsPerKg(st.Power, s.Athlete.Weight),
		model.FieldTime:     courseTime(st.Time),
		model.FieldKJ:       fixedOr(st.KJ, 0, NoValue),
		model.FieldDistance: scaledOr(st.Distance, 1.0/1000, 1, " km", NoValue),
		model.FieldClimb:    fixedOr(st.Climbing, 0, NoValue),
		model.FieldGrade:    scaledOr(st.Grade, 100, 2, " %", NoValue),
		model.FieldWBal:     wBal(s.WBal),
	}

	return Readout{SubjectID: subjectID, Values: values}
}

func fixedOr(m model.Metric, decimals int, fallback string) string {
	if !m.Valid() {
		return fallback
	}
	return Fixed(m.Value, decimals)
}

func scaledOr(m model.Metric, factor float64, decimals int, suffix, fallback string) string {
	if !m.Valid() {
		return fallback
	}
	return Fixed(m.Value*factor, decimals) + suffix
}

func heartRate(m model.Metric) string {
	if !m.Valid() || m.Value == 0 {
		return NoValue
	}
	return Fixed(m.Value, 0)
}

// wattsPerKg treats missing power as zero; only the weight gates the field.
func wattsPerKg(power, weight model.Metric) string {
	if !weight.Valid() || weight.Value <= 0 {
		return NotAvailable
	}
	ratio := power.Or(0) / weight.Value
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return NotAvailable
	}
	return Fixed(ratio, 2)
}

// wBal is truncated, never rounded, so remaining capacity is not overstated.
// A null wBal means the host has no estimate, not an empty tank.
func wBal(m model.Metric) string {
	if !m.Valid() || m.Null || m.Value < 0 {
		return NotAvailable
	}
	kj := math.Floor((m.Value/1000)*10) / 10
	if kj == 0 {
		kj = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(kj, 'f', 1, 64) + " kj"
}

// maxClockSeconds keeps the int64 conversion in Clock well defined
const maxClockSeconds = math.MaxInt64 / 2

func courseTime(m model.Metric) string {
	if !m.Valid() || math.Abs(m.Value) > maxClockSeconds {
		return NoValue
	}
	return Clock(int64(math.Round(m.Value)))
}

// Clock renders seconds as H:MM:SS with unpadded hours
func Clock(totalSeconds int64) string {
	sign := ""
	if totalSeconds < 0 {
		sign = "-"
		totalSeconds = -totalSeconds
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%s%d:%02d:%02d", sign, hours, minutes, seconds)
}

// Fixed formats v with the given number of decimals, rounding halves away
// from zero.
func Fixed(v float64, decimals int) string {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = v
	}
	return strconv.FormatFloat(r, 'f', decimals, 64)
}
