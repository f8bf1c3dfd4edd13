package rules

import "testing"

func TestEvaluateAggregatesHighestSeverity(t *testing.T) {
	table := []Rule[int]{
		{Name: "warn-even", Severity: Warning, When: func(n int) bool { return n%2 == 0 }, Reason: func(int) string { return "even" }},
		{Name: "alert-big", Severity: Alert, When: func(n int) bool { return n > 100 }, Reason: func(int) string { return "big" }},
	}

	result := Evaluate(table, 102)
	if result.Status != Alert {
		t.Fatalf("expected Alert, got %s", result.Status)
	}
	if !result.Triggered {
		t.Fatal("expected triggered result")
	}
	if result.Reason() != "even big" {
		t.Fatalf("expected reasons in table order, got %q", result.Reason())
	}
}

func TestEvaluateNoMatchIsNormal(t *testing.T) {
	table := []Rule[int]{
		{Name: "never", Severity: Alert, When: func(int) bool { return false }},
	}

	result := Evaluate(table, 7)
	if result.Status != Normal || result.Triggered {
		t.Fatalf("expected untriggered Normal, got %s triggered=%v", result.Status, result.Triggered)
	}
	if result.Reason() != "" {
		t.Fatalf("expected empty reason, got %q", result.Reason())
	}
}

func TestFirstMatchRespectsTableOrder(t *testing.T) {
	table := []Rule[string]{
		{Name: "first", When: Keyword("alpha")},
		{Name: "second", When: Keyword("alpha", "beta")},
	}

	rule, ok := FirstMatch(table, "ALPHA and beta")
	if !ok {
		t.Fatal("expected a match")
	}
	if rule.Name != "first" {
		t.Fatalf("expected first rule to win, got %s", rule.Name)
	}
}

func TestKeywordIsCaseInsensitive(t *testing.T) {
	match := Keyword("High", "elevated")
	if !match("BP reading seems ELEVATED today") {
		t.Fatal("expected keyword match")
	}
	if match("all readings nominal") {
		t.Fatal("unexpected keyword match")
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"alert":   Alert,
		"Warning": Warning,
		"normal":  Normal,
		"bogus":   Normal,
	}
	for input, want := range cases {
		if got := ParseSeverity(input); got != want {
			t.Fatalf("ParseSeverity(%q) = %s, want %s", input, got, want)
		}
	}
}
