// Package rules implements a small ordered decision-table evaluator.
// The clinical threshold classifier, the keyword fallback and the chat
// intent classifier are all tables fed through this one engine.
package rules

import "strings"

type Severity int

const (
	Normal Severity = iota
	Warning
	Alert
)

func (s Severity) String() string {
	switch s {
	case Alert:
		return "Alert"
	case Warning:
		return "Warning"
	default:
		return "Normal"
	}
}

func ParseSeverity(value string) Severity {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "alert":
		return Alert
	case "warning":
		return Warning
	default:
		return Normal
	}
}

// Rule is one row of an ordered decision table. When decides whether the
// row fires for an input; Reason renders the row's human-readable outcome.
type Rule[T any] struct {
	Name     string
	Severity Severity
	When     func(T) bool
	Reason   func(T) string
}

// Result aggregates every fired row of a table. Triggered is true iff the
// status rises above Normal, and Reason is non-empty iff Triggered.
type Result struct {
	Status    Severity
	Triggered bool
	Reasons   []string
}

func (r Result) Reason() string {
	return strings.Join(r.Reasons, " ")
}

// Evaluate runs every rule in table order. The aggregate status is the
// highest severity seen and reasons accumulate in table order.
func Evaluate[T any](table []Rule[T], input T) Result {
	var result Result
	for _, rule := range table {
		if !rule.When(input) {
			continue
		}
		if rule.Severity > result.Status {
			result.Status = rule.Severity
		}
		if rule.Reason != nil {
			result.Reasons = append(result.Reasons, rule.Reason(input))
		}
	}
	result.Triggered = result.Status != Normal
	return result
}

// FirstMatch returns the first rule in table order whose predicate holds.
func FirstMatch[T any](table []Rule[T], input T) (Rule[T], bool) {
	for _, rule := range table {
		if rule.When(input) {
			return rule, true
		}
	}
	return Rule[T]{}, false
}

// All combines predicates conjunctively.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(input T) bool {
		for _, pred := range preds {
			if !pred(input) {
				return false
			}
		}
		return true
	}
}

// Keyword builds a case-insensitive substring predicate over free text.
// Any of the words matching is enough.
func Keyword(words ...string) func(string) bool {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, w := range lowered {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}
