package vitals

import (
	"regexp"
	"strconv"
	"strings"
)

// Free-text vital patterns, searched independently in this fixed order:
// blood pressure, blood sugar, heart rate. Only 2-3 digit values count;
// shorter or longer runs of digits are ignored rather than rejected.
//
// A bare number elsewhere in the text can be misread when it happens to
// precede a unit token (e.g. "72" before an unrelated "bpm"). That
// ambiguity is inherent to free-text parsing and is accepted behavior.
var (
	bpPattern    = regexp.MustCompile(`(\d{2,3})\s*/\s*(\d{2,3})`)
	sugarPattern = regexp.MustCompile(`(?i)(\d{2,3})\s*(mg/dl|mmol)`)
	hrPattern    = regexp.MustCompile(`(?i)(\d{2,3})\s*bpm`)
)

// Extract scans text for vital-sign measurements. Each pattern
// contributes at most its first match, so a single observation yields
// between zero and three measurements. Extract is pure: identical text
// always yields the identical list.
func Extract(text string) []Measurement {
	var measurements []Measurement

	if m := bpPattern.FindStringSubmatch(text); m != nil {
		systolic, _ := strconv.Atoi(m[1])
		diastolic, _ := strconv.Atoi(m[2])
		measurements = append(measurements, BloodPressure{Systolic: systolic, Diastolic: diastolic})
	}

	if m := sugarPattern.FindStringSubmatch(text); m != nil {
		value, _ := strconv.Atoi(m[1])
		unit := UnitMgDL
		if strings.EqualFold(m[2], "mmol") {
			unit = UnitMmol
		}
		measurements = append(measurements, BloodSugar{Value: value, Unit: unit})
	}

	if m := hrPattern.FindStringSubmatch(text); m != nil {
		bpm, _ := strconv.Atoi(m[1])
		measurements = append(measurements, HeartRate{BPM: bpm})
	}

	return measurements
}
