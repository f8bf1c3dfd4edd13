package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drcares-ai/platform/pkg/risk"
)

type fakeAppointmentStore struct {
	appointments []Appointment
	lastFrom     time.Time
	lastTo       time.Time
}

func (f *fakeAppointmentStore) ApprovedInWindow(_ context.Context, from, to time.Time) ([]Appointment, error) {
	f.lastFrom, f.lastTo = from, to
	var out []Appointment
	for _, a := range f.appointments {
		if a.Status == "Approved" && !a.ScheduledAt.Before(from) && !a.ScheduledAt.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) GetAppointment(_ context.Context, id string) (*Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

// fakeReminderStore mimics the unique (appointment_id, fire_at) index.
type fakeReminderStore struct {
	rows map[string]Reminder
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{rows: make(map[string]Reminder)}
}

func (f *fakeReminderStore) key(appointmentID string, fireAt time.Time) string {
	return appointmentID + "|" + fireAt.UTC().Format(time.RFC3339)
}

func (f *fakeReminderStore) InsertIfAbsent(_ context.Context, rem *Reminder) (bool, error) {
	k := f.key(rem.AppointmentID, rem.FireAt)
	if _, exists := f.rows[k]; exists {
		return false, nil
	}
	f.rows[k] = *rem
	return true, nil
}

func (f *fakeReminderStore) FetchDueAndMark(_ context.Context, patientID string, now time.Time) ([]Reminder, error) {
	var due []Reminder
	for k, rem := range f.rows {
		if rem.PatientID == patientID && !rem.Sent && !rem.FireAt.After(now) {
			rem.Sent = true
			sentAt := now
			rem.SentAt = &sentAt
			f.rows[k] = rem
			due = append(due, rem)
		}
	}
	return due, nil
}

func (f *fakeReminderStore) Pending(_ context.Context, patientID string) ([]Reminder, error) {
	var pending []Reminder
	for _, rem := range f.rows {
		if rem.PatientID == patientID && !rem.Sent {
			pending = append(pending, rem)
		}
	}
	return pending, nil
}

type fixedPriority struct {
	priority risk.Priority
	err      error
}

func (f fixedPriority) ComputePriority(context.Context, string) (risk.Priority, error) {
	return f.priority, f.err
}

type recordingPublisher struct {
	events []string
}

func (r *recordingPublisher) PublishEvent(_ context.Context, eventType, _ string, _ map[string]interface{}) error {
	r.events = append(r.events, eventType)
	return nil
}

type fakeLocker struct {
	held bool
}

func (f *fakeLocker) TryLock(context.Context, string, time.Duration) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLocker) Unlock(context.Context, string) error {
	f.held = false
	return nil
}

func newTestService(appointments *fakeAppointmentStore, reminders *fakeReminderStore, priority risk.Priority) *Service {
	svc := NewService(appointments, reminders, fixedPriority{priority: priority}, nil, nil, 7*day, time.Minute)
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestGenerateRemindersZeroHistoryPatient(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "a1", PatientID: "p1", ScheduledAt: now.Add(3 * day), Status: "Approved"},
	}}
	store := newFakeReminderStore()
	svc := newTestService(appointments, store, risk.PriorityNormal)

	if err := svc.GenerateReminders(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Normal priority: single reminder one day before.
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(store.rows))
	}
	for _, rem := range store.rows {
		if !rem.FireAt.Equal(now.Add(3 * day).Add(-day)) {
			t.Fatalf("expected reminder at appointment-1d, got %v", rem.FireAt)
		}
	}
}

func TestGenerateRemindersHighPriorityCount(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "a1", PatientID: "p1", ScheduledAt: now.Add(5 * day), Status: "Approved"},
	}}
	store := newFakeReminderStore()
	svc := newTestService(appointments, store, risk.PriorityHigh)

	if err := svc.GenerateReminders(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.rows) != 4 {
		t.Fatalf("expected 4 reminders for high priority, got %d", len(store.rows))
	}
}

func TestGenerateRemindersIsIdempotent(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "a1", PatientID: "p1", ScheduledAt: now.Add(5 * day), Status: "Approved"},
	}}
	store := newFakeReminderStore()
	svc := newTestService(appointments, store, risk.PriorityHigh)

	for i := 0; i < 2; i++ {
		if err := svc.GenerateReminders(context.Background()); err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i, err)
		}
	}
	if len(store.rows) != 4 {
		t.Fatalf("expected 4 reminders after re-planning, got %d", len(store.rows))
	}
}

func TestGenerateRemindersHonorsHorizon(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "inside", PatientID: "p1", ScheduledAt: now.Add(2 * day), Status: "Approved"},
		{ID: "outside", PatientID: "p1", ScheduledAt: now.Add(10 * day), Status: "Approved"},
		{ID: "pending", PatientID: "p1", ScheduledAt: now.Add(2 * day), Status: "Pending"},
	}}
	store := newFakeReminderStore()
	svc := newTestService(appointments, store, risk.PriorityNormal)

	if err := svc.GenerateReminders(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rem := range store.rows {
		if rem.AppointmentID != "inside" {
			t.Fatalf("unexpected reminder for appointment %s", rem.AppointmentID)
		}
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected only the in-window appointment planned, got %d rows", len(store.rows))
	}
	if !appointments.lastTo.Equal(now.Add(7 * day)) {
		t.Fatalf("expected 7 day window, got %v", appointments.lastTo.Sub(appointments.lastFrom))
	}
}

func TestPlanRemindersPastAppointment(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "past", PatientID: "p1", ScheduledAt: now.Add(-day), Status: "Approved"},
	}}
	store := newFakeReminderStore()
	svc := newTestService(appointments, store, risk.PriorityNormal)

	if err := svc.PlanReminders(context.Background(), "past"); !errors.Is(err, ErrAppointmentPast) {
		t.Fatalf("expected ErrAppointmentPast, got %v", err)
	}
	if err := svc.PlanReminders(context.Background(), "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("expected no reminders, got %d", len(store.rows))
	}
}

func TestFetchDueMarksAndPublishes(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	store := newFakeReminderStore()
	store.rows["a1|due"] = Reminder{ID: "r1", AppointmentID: "a1", PatientID: "p1", FireAt: now.Add(-time.Hour)}
	store.rows["a1|later"] = Reminder{ID: "r2", AppointmentID: "a1", PatientID: "p1", FireAt: now.Add(time.Hour)}

	producer := &recordingPublisher{}
	svc := NewService(&fakeAppointmentStore{}, store, fixedPriority{priority: risk.PriorityNormal}, producer, nil, 7*day, time.Minute)
	svc.now = func() time.Time { return now }

	due, err := svc.FetchDue(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "r1" {
		t.Fatalf("expected only r1 due, got %v", due)
	}
	if len(producer.events) != 1 || producer.events[0] != "reminder-due" {
		t.Fatalf("expected one reminder-due event, got %v", producer.events)
	}

	// A second fetch returns nothing: the first marked the row sent.
	due, err = svc.FetchDue(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no reminders on second fetch, got %v", due)
	}
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentStore{appointments: []Appointment{
		{ID: "a1", PatientID: "p1", ScheduledAt: now.Add(2 * day), Status: "Approved"},
	}}
	store := newFakeReminderStore()
	locker := &fakeLocker{held: true}
	svc := NewService(appointments, store, fixedPriority{priority: risk.PriorityNormal}, nil, locker, 7*day, time.Minute)
	svc.now = func() time.Time { return now }

	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("expected no planning while lock held, got %d rows", len(store.rows))
	}

	locker.held = false
	if err := svc.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected planning after lock release, got %d rows", len(store.rows))
	}
	if locker.held {
		t.Fatal("expected lock released after run")
	}
}
