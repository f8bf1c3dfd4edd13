package assistant

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/drcares-ai/platform/pkg/rules"
	"gopkg.in/yaml.v3"
)

// Intent is one row of the ordered intent table: the first row with a
// matching keyword wins.
type Intent struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Response string   `yaml:"response" json:"response"`
}

// IntentTable is the canonical keyword-to-intent mapping. The chat
// widget's client-side copy is generated from this exact table (served
// at GET /intents), keeping both sides provably in sync.
type IntentTable struct {
	Intents  []Intent `yaml:"intents" json:"intents"`
	Fallback Intent   `yaml:"fallback" json:"fallback"`
}

func LoadIntentTable(path string) (IntentTable, error) {
	if path == "" {
		return DefaultIntentTable(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultIntentTable(), err
	}

	var table IntentTable
	if err := yaml.Unmarshal(content, &table); err != nil {
		return IntentTable{}, err
	}

	if len(table.Intents) == 0 {
		return IntentTable{}, errors.New("no intents configured")
	}
	if table.Fallback.Name == "" {
		table.Fallback = DefaultIntentTable().Fallback
	}

	return table, nil
}

func DefaultIntentTable() IntentTable {
	return IntentTable{
		Intents: []Intent{
			{
				Name:     "appointment_booking",
				Keywords: []string{"appointment", "book"},
				Response: "I can help you book an appointment. Please visit our Appointment page or tell me your preferred date and department.",
			},
			{
				Name:     "symptom_check",
				Keywords: []string{"symptom", "sick", "pain"},
				Response: "I can help analyze your symptoms. Please describe what you're experiencing in detail.",
			},
			{
				Name:     "medication_info",
				Keywords: []string{"medication", "medicine"},
				Response: "I can provide information about medications. Please specify which medication you'd like to know about.",
			},
			{
				Name:     "greeting",
				Keywords: []string{"hello", "hi"},
				Response: "Hello! I'm Dr. Cares AI, your virtual health assistant. How can I help you today?",
			},
		},
		Fallback: Intent{
			Name:     "general_query",
			Response: "I'm here to help! You can ask me about appointments, symptoms, medications, or general health advice.",
		},
	}
}

// IntentClassifier maps a chat message to an intent and its canned
// response. Deterministic; empty or unmatched input resolves to the
// fallback intent, never an error.
type IntentClassifier struct {
	table IntentTable
	rows  []rules.Rule[string]
}

func NewIntentClassifier(table IntentTable) *IntentClassifier {
	rows := make([]rules.Rule[string], 0, len(table.Intents))
	for _, intent := range table.Intents {
		rows = append(rows, rules.Rule[string]{
			Name: intent.Name,
			When: rules.Keyword(intent.Keywords...),
		})
	}
	return &IntentClassifier{table: table, rows: rows}
}

func (c *IntentClassifier) Classify(message string) (intent, response string) {
	if rule, ok := rules.FirstMatch(c.rows, message); ok {
		for _, row := range c.table.Intents {
			if row.Name == rule.Name {
				return row.Name, row.Response
			}
		}
	}
	return c.table.Fallback.Name, c.table.Fallback.Response
}

// Table exposes the canonical intent table for the widget endpoint and
// the shared test fixture.
func (c *IntentClassifier) Table() IntentTable {
	return c.table
}
