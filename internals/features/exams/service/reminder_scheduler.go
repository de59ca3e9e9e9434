// file: internals/features/exams/service/reminder_scheduler.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/helpers/dbtime"
)

const reminderRunTimeout = 4 * time.Minute

// ReminderScheduler enqueues exam-reminder notifications for enrolled students
// of upcoming exams that start LeadDays from today (school time).
type ReminderScheduler struct {
	DB       *gorm.DB
	Notifier *NotificationService
	Log      *zap.Logger
	Spec     string
	LeadDays int
	Location *time.Location

	now  func() time.Time
	cron *cron.Cron
}

func NewReminderScheduler(db *gorm.DB, notifier *NotificationService, log *zap.Logger, spec string, leadDays int, loc *time.Location) *ReminderScheduler {
	if loc == nil {
		loc = dbtime.DefaultLocation()
	}
	return &ReminderScheduler{
		DB:       db,
		Notifier: notifier,
		Log:      log,
		Spec:     spec,
		LeadDays: leadDays,
		Location: loc,
		now:      time.Now,
	}
}

// Start registers the job and starts cron. An empty Spec disables the job.
func (s *ReminderScheduler) Start() error {
	if s.Spec == "" {
		s.Log.Info("exam reminder disabled")
		return nil
	}
	cronLog := cron.PrintfLogger(zap.NewStdLog(s.Log.Named("cron")))
	c := cron.New(
		cron.WithLocation(s.Location),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := c.AddFunc(s.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.Log.Error("exam reminder run failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule exam reminder %q: %w", s.Spec, err)
	}
	s.cron = c
	c.Start()
	s.Log.Info("exam reminder started", zap.String("schedule", s.Spec), zap.Int("lead_days", s.LeadDays))
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Window is the start-time range of exams targeted by a run at now.
func (s *ReminderScheduler) Window(now time.Time) (time.Time, time.Time) {
	return dbtime.DayWindow(now.AddDate(0, 0, s.LeadDays), s.Location)
}

// RunOnce enqueues reminders and returns how many exams were reminded. A
// failing exam does not stop the others; their errors are joined.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	from, to := s.Window(s.now())

	var exams []model.ExamModel
	if err := s.DB.WithContext(ctx).
		Where("exam_status = ?", model.ExamStatusUpcoming).
		Where("exam_start_at >= ? AND exam_start_at < ?", from, to).
		Find(&exams).Error; err != nil {
		return 0, fmt.Errorf("list upcoming exams: %w", err)
	}

	done, err := remindEach(ctx, exams, s.remind)
	s.Log.Info("exam reminder run",
		zap.Time("from", from), zap.Time("to", to),
		zap.Int("exams", len(exams)), zap.Int("reminded", done))
	return done, err
}

func remindEach(ctx context.Context, exams []model.ExamModel, remind func(context.Context, model.ExamModel) error) (int, error) {
	var (
		done int
		errs []error
	)
	for _, exam := range exams {
		if err := remind(ctx, exam); err != nil {
			errs = append(errs, fmt.Errorf("exam %s: %w", exam.ExamID, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func (s *ReminderScheduler) remind(ctx context.Context, exam model.ExamModel) error {
	enrollments, err := s.Notifier.Repo.Enrollments(ctx, exam.ExamID, nil)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.ExamEnrollmentStudentID
	}
	students, err := s.Notifier.Repo.RosterStudents(ctx, exam, ids)
	if err != nil {
		return err
	}
	rows, err := s.Notifier.buildOutbox(exam, students, model.TopicExamReminder, s.Notifier.examURL(exam))
	if err != nil {
		return err
	}
	return s.Notifier.enqueue(ctx, rows)
}
