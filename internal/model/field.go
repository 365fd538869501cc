package model

// FieldID is the stable key of a catalog field
type FieldID string

const (
	FieldCadence  FieldID = "cadence"
	FieldDraft    FieldID = "draft"
	FieldHR       FieldID = "hr"
	FieldPower    FieldID = "power"
	FieldWKG      FieldID = "wkg"
	FieldSpeed    FieldID = "speed"
	FieldWBal     FieldID = "wbal"
	FieldTime     FieldID = "time"
	FieldKJ       FieldID = "kj"
	FieldDistance FieldID = "distance"
	FieldClimb    FieldID = "climb"
	FieldGrade    FieldID = "grade"
)

// String returns the string representation of FieldID
func (id FieldID) String() string {
	return string(id)
}

// ValueKind selects the formatting rule applied to a field
type ValueKind int

const (
	KindCadence ValueKind = iota
	KindDraft
	KindHeartRate
	KindPower
	KindWattsPerKg
	KindSpeed
	KindWBal
	KindTime
	KindKJ
	KindDistance
	KindClimb
	KindGrade
)

// String returns a readable name for the kind
func (k ValueKind) String() string {
	switch k {
	case KindCadence:
		return "cadence"
	case KindDraft:
		return "draft"
	case KindHeartRate:
		return "heartrate"
	case KindPower:
		return "power"
	case KindWattsPerKg:
		return "wkg"
	case KindSpeed:
		return "speed"
	case KindWBal:
		return "wbal"
	case KindTime:
		return "time"
	case KindKJ:
		return "kj"
	case KindDistance:
		return "distance"
	case KindClimb:
		return "climb"
	case KindGrade:
		return "grade"
	default:
		return "unknown"
	}
}

// FieldDescriptor is one row of the panel. Identity and metadata are fixed;
// Visible is the only mutable presentation state.
type FieldDescriptor struct {
	ID      FieldID
	Label   string
	IconRef string
	Kind    ValueKind
	Visible bool
}

// FieldState is the persisted subset of a descriptor. The JSON shape matches
// what earlier releases wrote, which also carried label/icon keys.
type FieldState struct {
	ID        FieldID `json:"id"`
	IsVisible bool    `json:"isVisible"`
}

// DefaultFields returns a fresh copy of the compile-time catalog in its
// default display order.
func DefaultFields() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: FieldCadence, Label: "Cadence", IconRef: "icons/cadence.svg", Kind: KindCadence, Visible: true},
		{ID: FieldDraft, Label: "Draft", IconRef: "icons/wind.svg", Kind: KindDraft, Visible: true},
		{ID: FieldHR, Label: "Heart Rate", IconRef: "icons/heart.svg", Kind: KindHeartRate, Visible: true},
		{ID: FieldPower, Label: "Power", IconRef: "icons/bolt.svg", Kind: KindPower, Visible: true},
		{ID: FieldWKG, Label: "w/kg", IconRef: "icons/wkg.svg", Kind: KindWattsPerKg, Visible: true},
		{ID: FieldSpeed, Label: "Speed", IconRef: "icons/speedometer.svg", Kind: KindSpeed, Visible: true},
		{ID: FieldWBal, Label: "wBal", IconRef: "icons/battery-half.svg", Kind: KindWBal, Visible: true},
		{ID: FieldTime, Label: "Time on Course", IconRef: "icons/clock.svg", Kind: KindTime, Visible: true},
		{ID: FieldKJ, Label: "kj", IconRef: "icons/kj.svg", Kind: KindKJ, Visible: true},
		{ID: FieldDistance, Label: "distance", IconRef: "icons/ruler-horizontal.svg", Kind: KindDistance, Visible: true},
		{ID: FieldClimb, Label: "climb", IconRef: "icons/mountain.svg", Kind: KindClimb, Visible: true},
		{ID: FieldGrade, Label: "Grade", IconRef: "icons/grade.svg", Kind: KindGrade, Visible: true},
	}
}
