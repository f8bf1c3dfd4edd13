package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/observability/metrics"
	"github.com/drcares-ai/platform/pkg/risk"
	"github.com/google/uuid"
)

// ErrAppointmentPast marks an appointment whose time has already
// passed; the planner skips it instead of failing the batch.
var ErrAppointmentPast = errors.New("appointment already past")

type AppointmentStore interface {
	ApprovedInWindow(ctx context.Context, from, to time.Time) ([]Appointment, error)
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
}

type ReminderStore interface {
	InsertIfAbsent(ctx context.Context, rem *Reminder) (bool, error)
	FetchDueAndMark(ctx context.Context, patientID string, now time.Time) ([]Reminder, error)
	Pending(ctx context.Context, patientID string) ([]Reminder, error)
}

type PrioritySource interface {
	ComputePriority(ctx context.Context, patientID string) (risk.Priority, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

// Locker guards the batch run so two schedulers never plan the same
// window simultaneously.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type Service struct {
	appointments AppointmentStore
	reminders    ReminderStore
	priorities   PrioritySource
	producer     EventPublisher
	locker       Locker
	horizon      time.Duration
	lockTTL      time.Duration
	now          func() time.Time
}

func NewService(appointments AppointmentStore, reminders ReminderStore, priorities PrioritySource, producer EventPublisher, locker Locker, horizon, lockTTL time.Duration) *Service {
	return &Service{
		appointments: appointments,
		reminders:    reminders,
		priorities:   priorities,
		producer:     producer,
		locker:       locker,
		horizon:      horizon,
		lockTTL:      lockTTL,
		now:          time.Now,
	}
}

const planLockKey = "reminders:plan:lock"

// RunOnce is the batch entry point: it takes the distributed lock and
// plans every approved appointment inside the rolling horizon. Skipped
// when another scheduler holds the lock.
func (s *Service) RunOnce(ctx context.Context) error {
	if s.locker != nil {
		acquired, err := s.locker.TryLock(ctx, planLockKey, s.lockTTL)
		if err != nil {
			return fmt.Errorf("acquiring plan lock: %w", err)
		}
		if !acquired {
			logger.Log.Info("reminder planning already running elsewhere, skipping")
			return nil
		}
		defer func() {
			if err := s.locker.Unlock(ctx, planLockKey); err != nil {
				logger.Log.WithError(err).Warn("failed to release plan lock")
			}
		}()
	}

	return s.GenerateReminders(ctx)
}

// GenerateReminders plans every approved appointment within the
// horizon. Failures on a single appointment are logged and skipped so
// one bad row cannot starve the rest of the batch.
func (s *Service) GenerateReminders(ctx context.Context) error {
	now := s.now()
	appointments, err := s.appointments.ApprovedInWindow(ctx, now, now.Add(s.horizon))
	if err != nil {
		return fmt.Errorf("listing appointments: %w", err)
	}

	for _, appointment := range appointments {
		if err := s.planAppointment(ctx, appointment, now); err != nil {
			logger.Log.WithError(err).WithField("appointment_id", appointment.ID).Warn("skipping appointment")
		}
	}

	logger.Log.WithField("appointments", len(appointments)).Info("reminder planning pass complete")
	return nil
}

// PlanReminders plans a single appointment on demand. Idempotent:
// repeat calls with an unchanged priority insert nothing new.
func (s *Service) PlanReminders(ctx context.Context, appointmentID string) error {
	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.planAppointment(ctx, *appointment, s.now())
}

func (s *Service) planAppointment(ctx context.Context, appointment Appointment, now time.Time) error {
	if !appointment.ScheduledAt.After(now) {
		return fmt.Errorf("%w: %s", ErrAppointmentPast, appointment.ID)
	}

	priority, err := s.priorities.ComputePriority(ctx, appointment.PatientID)
	if err != nil {
		return fmt.Errorf("computing priority: %w", err)
	}

	planned := 0
	for _, fireAt := range PlanTimes(appointment.ScheduledAt, priority) {
		rem := &Reminder{
			ID:            uuid.New().String(),
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			ReminderType:  TypeInApp,
			FireAt:        fireAt,
		}
		inserted, err := s.reminders.InsertIfAbsent(ctx, rem)
		if err != nil {
			return fmt.Errorf("inserting reminder: %w", err)
		}
		if inserted {
			planned++
			logger.Log.WithFields(map[string]interface{}{
				"appointment_id": appointment.ID,
				"priority":       string(priority),
				"fire_at":        fireAt,
			}).Debug("reminder scheduled")
		}
	}
	metrics.ObserveRemindersPlanned(planned)
	return nil
}

// FetchDue atomically marks and returns the patient's due reminders.
// Each returned reminder is announced on the event bus, best effort.
func (s *Service) FetchDue(ctx context.Context, patientID string) ([]Reminder, error) {
	reminders, err := s.reminders.FetchDueAndMark(ctx, patientID, s.now())
	if err != nil {
		return nil, fmt.Errorf("fetching due reminders: %w", err)
	}
	metrics.ObserveRemindersSent(len(reminders))

	if s.producer != nil {
		for _, rem := range reminders {
			event := map[string]interface{}{
				"reminder_id":    rem.ID,
				"appointment_id": rem.AppointmentID,
				"patient_id":     rem.PatientID,
				"fire_at":        rem.FireAt,
			}
			if err := s.producer.PublishEvent(ctx, "reminder-due", "reminder-service", event); err != nil {
				logger.Log.WithError(err).WithField("reminder_id", rem.ID).Warn("failed to publish reminder event")
			}
		}
	}

	return reminders, nil
}

func (s *Service) Pending(ctx context.Context, patientID string) ([]Reminder, error) {
	return s.reminders.Pending(ctx, patientID)
}
