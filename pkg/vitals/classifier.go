package vitals

import (
	"fmt"

	"github.com/drcares-ai/platform/pkg/rules"
)

// Result is the outcome of classifying one observation. Triggered is
// true iff Status is above Normal, and Reason is non-empty iff Triggered.
type Result struct {
	Status    rules.Severity `json:"status"`
	Triggered bool           `json:"triggered"`
	Reason    string         `json:"reason,omitempty"`
}

// Classifier evaluates typed measurements against clinical thresholds
// and falls back to qualitative keywords when no measurement parses.
// Stateless once constructed; safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
	table      []rules.Rule[[]Measurement]
	fallback   []rules.Rule[string]
}

func NewClassifier(th Thresholds) *Classifier {
	c := &Classifier{thresholds: th}
	c.table = []rules.Rule[[]Measurement]{
		{
			Name:     "bp-high",
			Severity: rules.Alert,
			When: c.onBloodPressure(func(bp BloodPressure) bool {
				return bp.Systolic >= th.BPHighSystolic || bp.Diastolic >= th.BPHighDiastolic
			}),
			Reason: c.bpReason("High blood pressure detected (%d/%d mmHg). Please consult your doctor."),
		},
		{
			Name:     "bp-low",
			Severity: rules.Warning,
			When: c.onBloodPressure(func(bp BloodPressure) bool {
				return bp.Systolic < th.BPLowSystolic || bp.Diastolic < th.BPLowDiastolic
			}),
			Reason: c.bpReason("Low blood pressure detected (%d/%d mmHg). Please monitor closely."),
		},
		{
			Name:     "sugar-high",
			Severity: rules.Alert,
			When:     c.onBloodSugar(func(bs BloodSugar) bool { return bs.Value > th.SugarHigh }),
			Reason:   c.sugarReason("High blood sugar level detected (%d mg/dL). Please consult your doctor."),
		},
		{
			Name:     "sugar-low",
			Severity: rules.Alert,
			When:     c.onBloodSugar(func(bs BloodSugar) bool { return bs.Value < th.SugarLow }),
			Reason:   c.sugarReason("Low blood sugar level detected (%d mg/dL). Please take action immediately."),
		},
		{
			Name:     "heart-rate-high",
			Severity: rules.Warning,
			When:     c.onHeartRate(func(hr HeartRate) bool { return hr.BPM > th.HeartRateHigh }),
			Reason:   c.hrReason("Elevated heart rate detected (%d bpm). Please monitor closely."),
		},
		{
			Name:     "heart-rate-low",
			Severity: rules.Warning,
			When:     c.onHeartRate(func(hr HeartRate) bool { return hr.BPM < th.HeartRateLow }),
			Reason:   c.hrReason("Low heart rate detected (%d bpm). Please consult your doctor if symptomatic."),
		},
	}
	c.fallback = []rules.Rule[string]{
		{
			Name:     "keyword-high",
			Severity: rules.Alert,
			When:     rules.Keyword("high", "elevated"),
			Reason:   func(string) string { return "Elevated vital signs detected. Please consult your doctor." },
		},
		{
			Name:     "keyword-low",
			Severity: rules.Warning,
			When:     rules.Keyword("low"),
			Reason:   func(string) string { return "Low vital signs detected. Please monitor closely." },
		},
	}
	return c
}

// Classify evaluates the threshold table against the parsed
// measurements. Rules are evaluated in a fixed order (blood pressure,
// blood sugar, heart rate); the aggregate status is the highest severity
// seen and reasons concatenate in that order.
func (c *Classifier) Classify(measurements []Measurement) Result {
	return toResult(rules.Evaluate(c.table, measurements))
}

// ClassifyKeywords is the qualitative fallback for observations that
// yield no structured measurement. It never attempts numeric parsing.
func (c *Classifier) ClassifyKeywords(text string) Result {
	rule, ok := rules.FirstMatch(c.fallback, text)
	if !ok {
		return Result{Status: rules.Normal}
	}
	return Result{Status: rule.Severity, Triggered: true, Reason: rule.Reason(text)}
}

// ClassifyObservation is the full pipeline: extract measurements and
// classify them, falling back to keywords when nothing parses. Empty or
// unparseable input degrades to Normal, never an error.
func (c *Classifier) ClassifyObservation(text string) ([]Measurement, Result) {
	measurements := Extract(text)
	if len(measurements) == 0 {
		return nil, c.ClassifyKeywords(text)
	}
	return measurements, c.Classify(measurements)
}

func toResult(r rules.Result) Result {
	return Result{Status: r.Status, Triggered: r.Triggered, Reason: r.Reason()}
}

func (c *Classifier) onBloodPressure(pred func(BloodPressure) bool) func([]Measurement) bool {
	return func(ms []Measurement) bool {
		bp, ok := firstBloodPressure(ms)
		return ok && pred(bp)
	}
}

func (c *Classifier) onBloodSugar(pred func(BloodSugar) bool) func([]Measurement) bool {
	return func(ms []Measurement) bool {
		bs, ok := firstBloodSugar(ms)
		return ok && pred(bs)
	}
}

func (c *Classifier) onHeartRate(pred func(HeartRate) bool) func([]Measurement) bool {
	return func(ms []Measurement) bool {
		hr, ok := firstHeartRate(ms)
		return ok && pred(hr)
	}
}

func (c *Classifier) bpReason(format string) func([]Measurement) string {
	return func(ms []Measurement) string {
		bp, _ := firstBloodPressure(ms)
		return fmt.Sprintf(format, bp.Systolic, bp.Diastolic)
	}
}

func (c *Classifier) sugarReason(format string) func([]Measurement) string {
	return func(ms []Measurement) string {
		bs, _ := firstBloodSugar(ms)
		return fmt.Sprintf(format, bs.Value)
	}
}

func (c *Classifier) hrReason(format string) func([]Measurement) string {
	return func(ms []Measurement) string {
		hr, _ := firstHeartRate(ms)
		return fmt.Sprintf(format, hr.BPM)
	}
}

func firstBloodPressure(ms []Measurement) (BloodPressure, bool) {
	for _, m := range ms {
		if bp, ok := m.(BloodPressure); ok {
			return bp, true
		}
	}
	return BloodPressure{}, false
}

func firstBloodSugar(ms []Measurement) (BloodSugar, bool) {
	for _, m := range ms {
		if bs, ok := m.(BloodSugar); ok {
			return bs, true
		}
	}
	return BloodSugar{}, false
}

func firstHeartRate(ms []Measurement) (HeartRate, bool) {
	for _, m := range ms {
		if hr, ok := m.(HeartRate); ok {
			return hr, true
		}
	}
	return HeartRate{}, false
}
