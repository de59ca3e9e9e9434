// file: internals/features/exams/route/module.go
package route

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examku_backend/internals/configs"
	"examku_backend/internals/features/exams/controller"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
	helper "examku_backend/internals/helpers"
)

// Module is the wired exams feature: one repository, one memo and one
// coordinator shared by every request.
type Module struct {
	Repo        *repository.ExamRepository
	Overview    *service.OverviewService
	Coordinator *service.BulkActionCoordinator
	Results     *service.ResultService
	Reminder    *service.ReminderScheduler
	Validate    *validator.Validate
	Scales      []stats.GradeScale
	Config      configs.AppConfig
}

func NewModule(db *gorm.DB, cfg configs.AppConfig, log *zap.Logger) (*Module, error) {
	scales, err := stats.LoadGradeScales(cfg.GradeScalesFile)
	if err != nil {
		return nil, fmt.Errorf("grade scales: %w", err)
	}

	repo := repository.NewExamRepository(db)
	notifier := service.NewNotificationService(db, repo, cfg.AppBaseURL)
	gateway := service.Collaborators{
		Enrollment:   service.NewEnrollmentService(db, repo),
		Notification: notifier,
		HallTickets:  service.NewHallTicketService(db, repo, cfg.AppBaseURL),
	}

	return &Module{
		Repo:        repo,
		Overview:    service.NewOverviewService(repo, stats.NewMemo(cfg.StatsCacheSize), log.Named("overview")),
		Coordinator: service.NewBulkActionCoordinator(gateway, log.Named("bulk")),
		Results:     service.NewResultService(db, repo, scales),
		Reminder:    service.NewReminderScheduler(db, notifier, log.Named("reminder"), cfg.ReminderCron, cfg.ReminderLeadDays, cfg.Location()),
		Validate:    helper.NewValidator(),
		Scales:      scales,
		Config:      cfg,
	}, nil
}

func (m *Module) ExamController() *controller.ExamController {
	return controller.NewExamController(m.Repo, m.Validate, m.Config.DefaultScale)
}

func (m *Module) OverviewController() *controller.OverviewController {
	return controller.NewOverviewController(m.Overview)
}

func (m *Module) BulkController() *controller.BulkController {
	return controller.NewBulkController(m.Overview, m.Coordinator, m.Validate)
}

func (m *Module) ResultController() *controller.ResultController {
	return controller.NewResultController(m.Results, m.Validate)
}
