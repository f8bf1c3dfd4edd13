package vitals

// Unit is the blood sugar unit token recognized in free text.
type Unit string

const (
	UnitMgDL Unit = "mg/dL"
	UnitMmol Unit = "mmol"
)

// Measurement is a typed numeric value parsed out of a free-text
// observation. Exactly one of the concrete types below.
type Measurement interface {
	isMeasurement()
}

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

type BloodSugar struct {
	Value int  `json:"value"`
	Unit  Unit `json:"unit"`
}

type HeartRate struct {
	BPM int `json:"bpm"`
}

func (BloodPressure) isMeasurement() {}
func (BloodSugar) isMeasurement()    {}
func (HeartRate) isMeasurement()     {}
