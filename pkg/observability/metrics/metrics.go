package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	observationsNormal  atomic.Int64
	observationsWarning atomic.Int64
	observationsAlert   atomic.Int64
	remindersPlanned    atomic.Int64
	remindersSent       atomic.Int64
	chatTurns           atomic.Int64
	symptomAnalyses     atomic.Int64
)

func Init() {}

func ObserveClassification(status string) {
	switch status {
	case "Alert":
		observationsAlert.Add(1)
	case "Warning":
		observationsWarning.Add(1)
	default:
		observationsNormal.Add(1)
	}
}

func ObserveRemindersPlanned(n int) {
	remindersPlanned.Add(int64(n))
}

func ObserveRemindersSent(n int) {
	remindersSent.Add(int64(n))
}

func ObserveChatTurn() {
	chatTurns.Add(1)
}

func ObserveSymptomAnalysis() {
	symptomAnalyses.Add(1)
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP drcares_monitoring_observations_normal_total Number of vital sign observations classified Normal.\n")
	fmt.Fprintf(w, "# TYPE drcares_monitoring_observations_normal_total counter\n")
	fmt.Fprintf(w, "drcares_monitoring_observations_normal_total %d\n", observationsNormal.Load())

	fmt.Fprintf(w, "# HELP drcares_monitoring_observations_warning_total Number of vital sign observations classified Warning.\n")
	fmt.Fprintf(w, "# TYPE drcares_monitoring_observations_warning_total counter\n")
	fmt.Fprintf(w, "drcares_monitoring_observations_warning_total %d\n", observationsWarning.Load())

	fmt.Fprintf(w, "# HELP drcares_monitoring_observations_alert_total Number of vital sign observations classified Alert.\n")
	fmt.Fprintf(w, "# TYPE drcares_monitoring_observations_alert_total counter\n")
	fmt.Fprintf(w, "drcares_monitoring_observations_alert_total %d\n", observationsAlert.Load())

	fmt.Fprintf(w, "# HELP drcares_reminders_planned_total Number of appointment reminders planned.\n")
	fmt.Fprintf(w, "# TYPE drcares_reminders_planned_total counter\n")
	fmt.Fprintf(w, "drcares_reminders_planned_total %d\n", remindersPlanned.Load())

	fmt.Fprintf(w, "# HELP drcares_reminders_sent_total Number of appointment reminders marked sent.\n")
	fmt.Fprintf(w, "# TYPE drcares_reminders_sent_total counter\n")
	fmt.Fprintf(w, "drcares_reminders_sent_total %d\n", remindersSent.Load())

	fmt.Fprintf(w, "# HELP drcares_assistant_chat_turns_total Number of chat messages processed.\n")
	fmt.Fprintf(w, "# TYPE drcares_assistant_chat_turns_total counter\n")
	fmt.Fprintf(w, "drcares_assistant_chat_turns_total %d\n", chatTurns.Load())

	fmt.Fprintf(w, "# HELP drcares_assistant_symptom_analyses_total Number of symptom analyses performed.\n")
	fmt.Fprintf(w, "# TYPE drcares_assistant_symptom_analyses_total counter\n")
	fmt.Fprintf(w, "drcares_assistant_symptom_analyses_total %d\n", symptomAnalyses.Load())
}
