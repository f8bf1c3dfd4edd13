// Package risk computes a patient's coarse urgency tier from their
// AI-derived history and predicts long-horizon health risks.
package risk

import (
	"context"
	"fmt"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
)

// History is the narrow record-store view the aggregator needs: one
// aggregate count per condition.
type History interface {
	CountHighRiskPredictions(ctx context.Context, patientID string) (int64, error)
	CountUnresolvedAlerts(ctx context.Context, patientID string) (int64, error)
	CountRecentAnalyses(ctx context.Context, patientID string, since time.Time) (int64, error)
}

// Aggregator recomputes the priority tier on every call; the same
// history always yields the same tier. No caching.
type Aggregator struct {
	history       History
	lookback      time.Duration
	analysisFloor int
	now           func() time.Time
}

func NewAggregator(history History, lookback time.Duration, analysisFloor int) *Aggregator {
	return &Aggregator{
		history:       history,
		lookback:      lookback,
		analysisFloor: analysisFloor,
		now:           time.Now,
	}
}

// ComputePriority checks three conditions in order and short-circuits
// on the first that holds: a High/Critical risk prediction or an
// unresolved triggered alert means high; more than analysisFloor
// symptom analyses inside the lookback window means medium.
func (a *Aggregator) ComputePriority(ctx context.Context, patientID string) (Priority, error) {
	highRisks, err := a.history.CountHighRiskPredictions(ctx, patientID)
	if err != nil {
		return "", fmt.Errorf("counting risk predictions: %w", err)
	}
	if highRisks > 0 {
		return PriorityHigh, nil
	}

	alerts, err := a.history.CountUnresolvedAlerts(ctx, patientID)
	if err != nil {
		return "", fmt.Errorf("counting unresolved alerts: %w", err)
	}
	if alerts > 0 {
		return PriorityHigh, nil
	}

	analyses, err := a.history.CountRecentAnalyses(ctx, patientID, a.now().Add(-a.lookback))
	if err != nil {
		return "", fmt.Errorf("counting recent analyses: %w", err)
	}
	if analyses > int64(a.analysisFloor) {
		return PriorityMedium, nil
	}

	return PriorityNormal, nil
}
