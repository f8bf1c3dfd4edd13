package assistant

import (
	"github.com/drcares-ai/platform/pkg/rules"
)

// Diagnosis is the canned outcome of the symptom keyword table.
type Diagnosis struct {
	Text            string
	Confidence      float64
	Recommendations []string
}

type diagnosisRule struct {
	name    string
	when    func(string) bool
	outcome Diagnosis
}

// Ordered keyword table; the first matching row wins. The final row is
// an unconditional fallback.
var diagnosisRules = []diagnosisRule{
	{
		name: "respiratory",
		when: rules.All(rules.Keyword("fever"), rules.Keyword("cough")),
		outcome: Diagnosis{
			Text:            "Possible respiratory infection. Recommend consultation with a doctor.",
			Confidence:      0.75,
			Recommendations: []string{"Rest", "Hydration", "Monitor temperature", "Consult doctor if symptoms persist"},
		},
	},
	{
		name: "headache",
		when: rules.Keyword("headache"),
		outcome: Diagnosis{
			Text:            "Possible tension headache or migraine. Consider stress management.",
			Confidence:      0.65,
			Recommendations: []string{"Rest in quiet environment", "Adequate hydration", "Stress reduction"},
		},
	},
	{
		name: "digestive",
		when: rules.Keyword("stomach", "nausea"),
		outcome: Diagnosis{
			Text:            "Possible digestive issue. Monitor diet and hydration.",
			Confidence:      0.70,
			Recommendations: []string{"Light diet", "Hydration", "Avoid spicy foods"},
		},
	},
}

var generalDiagnosis = Diagnosis{
	Text:            "General symptoms detected. Recommend professional medical evaluation.",
	Confidence:      0.50,
	Recommendations: []string{"Schedule doctor appointment", "Monitor symptoms"},
}

// DiagnoseSymptoms runs the free-text symptom description through the
// keyword table. Pure function; never fails.
func DiagnoseSymptoms(symptoms string) Diagnosis {
	for _, rule := range diagnosisRules {
		if rule.when(symptoms) {
			return rule.outcome
		}
	}
	return generalDiagnosis
}

// Medication is a canned recommendation derived from a diagnosis.
type Medication struct {
	Name      string
	Dosage    string
	Frequency string
	Duration  string
	Reasoning string
}

type medicationRule struct {
	when       func(string) bool
	medication Medication
}

// Every matching row contributes, unlike the first-match diagnosis
// table above.
var medicationRules = []medicationRule{
	{
		when: rules.Keyword("respiratory", "fever"),
		medication: Medication{
			Name:      "Paracetamol",
			Dosage:    "500mg",
			Frequency: "Every 6 hours",
			Duration:  "3-5 days",
			Reasoning: "For fever and pain relief",
		},
	},
	{
		when: rules.Keyword("headache"),
		medication: Medication{
			Name:      "Ibuprofen",
			Dosage:    "400mg",
			Frequency: "Every 8 hours as needed",
			Duration:  "2-3 days",
			Reasoning: "For headache relief",
		},
	},
	{
		when: rules.Keyword("digestive"),
		medication: Medication{
			Name:      "Antacid",
			Dosage:    "10ml",
			Frequency: "After meals",
			Duration:  "3-5 days",
			Reasoning: "For digestive comfort",
		},
	},
}

var generalCare = Medication{
	Name:      "General Care",
	Dosage:    "N/A",
	Frequency: "As needed",
	Duration:  "Ongoing",
	Reasoning: "Consult with doctor for specific medication",
}

// RecommendMedications maps a diagnosis text to canned medication
// suggestions, falling back to general care advice.
func RecommendMedications(diagnosis string) []Medication {
	var medications []Medication
	for _, rule := range medicationRules {
		if rule.when(diagnosis) {
			medications = append(medications, rule.medication)
		}
	}
	if len(medications) == 0 {
		medications = append(medications, generalCare)
	}
	return medications
}

// Advice is one preventive care item.
type Advice struct {
	Category string
	Text     string
	Priority string
}

// PreventiveCareAdvice is the standing preventive guidance returned to
// every patient.
func PreventiveCareAdvice() []Advice {
	return []Advice{
		{Category: "Exercise", Text: "Engage in at least 30 minutes of moderate physical activity 5 days a week", Priority: "High"},
		{Category: "Nutrition", Text: "Maintain a balanced diet with fruits, vegetables, and whole grains", Priority: "High"},
		{Category: "Hydration", Text: "Drink at least 8 glasses of water daily", Priority: "Medium"},
		{Category: "Sleep", Text: "Aim for 7-9 hours of quality sleep each night", Priority: "High"},
		{Category: "Stress Management", Text: "Practice stress-reduction techniques like meditation or deep breathing", Priority: "Medium"},
	}
}
