package risk

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHistory struct {
	highRisks int64
	alerts    int64
	analyses  int64

	calls []string
	err   error
}

func (f *fakeHistory) CountHighRiskPredictions(context.Context, string) (int64, error) {
	f.calls = append(f.calls, "predictions")
	return f.highRisks, f.err
}

func (f *fakeHistory) CountUnresolvedAlerts(context.Context, string) (int64, error) {
	f.calls = append(f.calls, "alerts")
	return f.alerts, f.err
}

func (f *fakeHistory) CountRecentAnalyses(context.Context, string, time.Time) (int64, error) {
	f.calls = append(f.calls, "analyses")
	return f.analyses, f.err
}

func newTestAggregator(h History) *Aggregator {
	return NewAggregator(h, 30*24*time.Hour, 2)
}

func TestComputePriorityZeroHistoryIsNormal(t *testing.T) {
	priority, err := newTestAggregator(&fakeHistory{}).ComputePriority(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != PriorityNormal {
		t.Fatalf("expected normal, got %s", priority)
	}
}

func TestComputePriorityHighRiskShortCircuits(t *testing.T) {
	history := &fakeHistory{highRisks: 1, analyses: 10}
	priority, err := newTestAggregator(history).ComputePriority(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Even with many recent analyses the risk prediction wins.
	if priority != PriorityHigh {
		t.Fatalf("expected high, got %s", priority)
	}
	if len(history.calls) != 1 || history.calls[0] != "predictions" {
		t.Fatalf("expected short-circuit after first query, got %v", history.calls)
	}
}

func TestComputePriorityUnresolvedAlert(t *testing.T) {
	history := &fakeHistory{alerts: 2}
	priority, err := newTestAggregator(history).ComputePriority(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != PriorityHigh {
		t.Fatalf("expected high, got %s", priority)
	}
}

func TestComputePriorityRecentAnalyses(t *testing.T) {
	cases := []struct {
		analyses int64
		want     Priority
	}{
		{3, PriorityMedium},
		{2, PriorityNormal}, // floor is strict: more than 2
	}
	for _, tc := range cases {
		history := &fakeHistory{analyses: tc.analyses}
		priority, err := newTestAggregator(history).ComputePriority(context.Background(), "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if priority != tc.want {
			t.Fatalf("analyses=%d: expected %s, got %s", tc.analyses, tc.want, priority)
		}
	}
}

func TestComputePriorityPropagatesStoreErrors(t *testing.T) {
	history := &fakeHistory{err: errors.New("store down")}
	if _, err := newTestAggregator(history).ComputePriority(context.Background(), "p1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPredictRisksAgeBands(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birthYear int
		wantTypes []string
	}{
		{1960, []string{"Cardiovascular Disease", "Type 2 Diabetes"}},
		{1980, []string{"Type 2 Diabetes"}},
		{2000, nil},
	}
	for _, tc := range cases {
		dob := time.Date(tc.birthYear, time.January, 15, 0, 0, 0, 0, time.UTC)
		predictions := PredictRisks("p1", dob, now)
		if len(predictions) != len(tc.wantTypes) {
			t.Fatalf("born %d: expected %d predictions, got %d", tc.birthYear, len(tc.wantTypes), len(predictions))
		}
		for i, want := range tc.wantTypes {
			if predictions[i].RiskType != want {
				t.Fatalf("born %d: expected %s, got %s", tc.birthYear, want, predictions[i].RiskType)
			}
		}
	}
}
