package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Metric is an optional numeric telemetry value. A metric that never
// appeared in the payload is distinct from one that is present and zero.
type Metric struct {
	Value   float64
	Present bool
	// Null is set when the payload carried an explicit null. The value then
	// reads as zero; fields without a zero default check Null themselves.
	Null bool
}

// Of returns a present metric holding v
func Of(v float64) Metric {
	return Metric{Value: v, Present: true}
}

// Valid reports whether the metric is present and a finite number
func (m Metric) Valid() bool {
	return m.Present && !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0)
}

// Or returns the value when valid, otherwise def
func (m Metric) Or(def float64) float64 {
	if !m.Valid() {
		return def
	}
	return m.Value
}

// UnmarshalJSON coerces the payload the way the host does: null is zero,
// numeric strings and booleans are converted, anything else becomes NaN.
func (m *Metric) UnmarshalJSON(data []byte) error {
	m.Present = true
	m.Null = false
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		m.Value = 0
		m.Null = true
		return nil
	case bytes.Equal(data, []byte("false")):
		m.Value = 0
		return nil
	case bytes.Equal(data, []byte("true")):
		m.Value = 1
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			m.Value = math.NaN()
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			m.Value = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			v = math.NaN()
		}
		m.Value = v
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		v = math.NaN()
	}
	m.Value = v
	return nil
}

// MarshalJSON writes absent or non-finite metrics as null
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'f', -1, 64)), nil
}

// Athlete carries the athlete profile values used for derived fields
type Athlete struct {
	Weight Metric `json:"weight"`
}

// RideState is the live ride state portion of a snapshot
type RideState struct {
	Cadence   Metric `json:"cadence"`
	Draft     Metric `json:"draft"`
	Heartrate Metric `json:"heartrate"`
	Power     Metric `json:"power"`
	Speed     Metric `json:"speed"`
	Time      Metric `json:"time"`
	KJ        Metric `json:"kj"`
	Distance  Metric `json:"distance"`
	Climbing  Metric `json:"climbing"`
	Grade     Metric `json:"grade"`
}

// Snapshot is one telemetry payload for the watched athlete
type Snapshot struct {
	AthleteID int64     `json:"athleteId"`
	Athlete   Athlete   `json:"athlete"`
	State     RideState `json:"state"`
	WBal      Metric    `json:"wBal"`
}
