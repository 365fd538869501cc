package format

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sisuhud/sisu-hud/internal/model"
)

func TestFormat_EmptyStateFallbacks(t *testing.T) {
	r := Format(0, model.Snapshot{})

	expected := map[model.FieldID]string{
		model.FieldCadence:  "N/A",
		model.FieldDraft:    "N/A",
		model.FieldHR:       "--",
		model.FieldPower:    "N/A",
		model.FieldSpeed:    "N/A",
		model.FieldWKG:      "N/A",
		model.FieldTime:     "--",
		model.FieldKJ:       "--",
		model.FieldDistance: "--",
		model.FieldClimb:    "--",
		model.FieldGrade:    "--",
		model.FieldWBal:     "N/A",
	}
	assert.Equal(t, expected, r.Values)
}

func TestFormat_FullSnapshot(t *testing.T) {
	s := model.Snapshot{
		AthleteID: 7,
		Athlete:   model.Athlete{Weight: model.Of(76.6)},
		State: model.RideState{
			Cadence:   model.Of(91.6),
			Draft:     model.Of(12.2),
			Heartrate: model.Of(151.4),
			Power:     model.Of(230),
			Speed:     model.Of(36.44),
			Time:      model.Of(3725),
			KJ:        model.Of(412.5),
			Distance:  model.Of(12345),
			Climbing:  model.Of(210.2),
			Grade:     model.Of(0.0523),
		},
		WBal: model.Of(20499),
	}

	r := Format(7, s)

	assert.Equal(t, int64(7), r.SubjectID)
	assert.Equal(t, "92", r.Values[model.FieldCadence])
	assert.Equal(t, "12", r.Values[model.FieldDraft])
	assert.Equal(t, "151", r.Values[model.FieldHR])
	assert.Equal(t, "230", r.Values[model.FieldPower])
	assert.Equal(t, "36.4", r.Values[model.FieldSpeed])
	assert.Equal(t, "3.00", r.Values[model.FieldWKG])
	assert.Equal(t, "1:02:05", r.Values[model.FieldTime])
	assert.Equal(t, "413", r.Values[model.FieldKJ])
	assert.Equal(t, "12.3 km", r.Values[model.FieldDistance])
	assert.Equal(t, "210", r.Values[model.FieldClimb])
	assert.Equal(t, "5.23 %", r.Values[model.FieldGrade])
	assert.Equal(t, "20.4 kj", r.Values[model.FieldWBal])
}

func TestFormat_PowerZeroIsPresent(t *testing.T) {
	r := Format(0, model.Snapshot{State: model.RideState{Power: model.Of(0)}})
	assert.Equal(t, "0", r.Values[model.FieldPower])
}

func TestFormat_HeartRateZeroFallsBack(t *testing.T) {
	r := Format(0, model.Snapshot{State: model.RideState{Heartrate: model.Of(0)}})
	assert.Equal(t, "--", r.Values[model.FieldHR])
}

func TestFormat_WBal(t *testing.T) {
	tests := []struct {
		joules   float64
		expected string
	}{
		{20499, "20.4 kj"},
		{20500, "20.5 kj"},
		{0, "0.0 kj"},
		{99, "0.0 kj"},
		{math.Copysign(0, -1), "0.0 kj"},
		{-1, "N/A"},
	}

	for _, test := range tests {
		r := Format(0, model.Snapshot{WBal: model.Of(test.joules)})
		assert.Equal(t, test.expected, r.Values[model.FieldWBal], "wBal=%v", test.joules)
	}
}

func TestFormat_DecodedNulls(t *testing.T) {
	raw := `{"athlete":{"weight":null},"state":{"power":null},"wBal":null}`

	var s model.Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	r := Format(0, s)

	assert.Equal(t, "N/A", r.Values[model.FieldWBal], "null wBal has no estimate")
	assert.Equal(t, "0", r.Values[model.FieldPower], "null power reads as zero")
	assert.Equal(t, "N/A", r.Values[model.FieldWKG], "null weight reads as zero")
}

func TestFormat_TimeOutOfRange(t *testing.T) {
	for _, v := range []float64{1e20, -1e20, math.MaxFloat64} {
		s := model.Snapshot{State: model.RideState{Time: model.Of(v)}}
		assert.Equal(t, NoValue, Format(0, s).Values[model.FieldTime], "time=%v", v)
	}
}

func TestFormat_WattsPerKg(t *testing.T) {
	tests := []struct {
		name     string
		power    model.Metric
		weight   model.Metric
		expected string
	}{
		{"typical", model.Of(230), model.Of(76.6), "3.00"},
		{"missing power counts as zero", model.Metric{}, model.Of(70), "0.00"},
		{"zero weight", model.Of(230), model.Of(0), "N/A"},
		{"missing weight", model.Of(230), model.Metric{}, "N/A"},
		{"nan power", model.Of(math.NaN()), model.Of(70), "N/A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := model.Snapshot{
				Athlete: model.Athlete{Weight: tc.weight},
				State:   model.RideState{Power: tc.power},
			}
			assert.Equal(t, tc.expected, Format(0, s).Values[model.FieldWKG])
		})
	}
}

func TestFormat_NaNDegradesToFallback(t *testing.T) {
	nan := model.Of(math.NaN())
	s := model.Snapshot{
		State: model.RideState{
			Cadence: nan, Draft: nan, Heartrate: nan, Power: nan, Speed: nan,
			Time: nan, KJ: nan, Distance: nan, Climbing: nan, Grade: nan,
		},
		WBal: nan,
	}

	assert.Equal(t, Format(0, model.Snapshot{}).Values, Format(0, s).Values)
}

func TestFormat_Idempotent(t *testing.T) {
	s := model.Snapshot{State: model.RideState{Power: model.Of(301), Time: model.Of(59.6)}}
	first := Format(3, s)
	second := Format(3, s)
	assert.Equal(t, first, second)
	assert.Equal(t, "0:01:00", first.Values[model.FieldTime])
}

func TestClock(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{3725, "1:02:05"},
		{36000, "10:00:00"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Clock(test.seconds))
	}
}

func TestFixed_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "3", Fixed(2.5, 0))
	assert.Equal(t, "1", Fixed(0.5, 0))
	assert.Equal(t, "0.3", Fixed(0.25, 1))
	assert.Equal(t, "10.00", Fixed(10, 2))
}

func TestReadout_ValueMissing(t *testing.T) {
	r := Readout{}
	assert.Equal(t, "--", r.Value(model.FieldPower))
}
