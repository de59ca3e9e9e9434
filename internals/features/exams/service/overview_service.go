// file: internals/features/exams/service/overview_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"examku_backend/internals/features/exams/model"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/stats"
)

// Overview is one aggregation pass for an exam.
type Overview struct {
	Exam     model.ExamModel
	Snapshot stats.Snapshot
	Cached   bool
}

type OverviewService struct {
	Source repository.ExamSource
	Memo   *stats.Memo
	Log    *zap.Logger
}

func NewOverviewService(src repository.ExamSource, memo *stats.Memo, log *zap.Logger) *OverviewService {
	return &OverviewService{Source: src, Memo: memo, Log: log}
}

// Load fetches the exam and its four streams, then merges and aggregates.
// A pass is reused only while the source fingerprint is unchanged.
func (s *OverviewService) Load(ctx context.Context, schoolID, examID uuid.UUID) (Overview, error) {
	exam, err := s.Source.GetExam(ctx, schoolID, examID)
	if err != nil {
		return Overview{}, err
	}
	fp, err := s.Source.Fingerprint(ctx, exam)
	if err != nil {
		return Overview{}, err
	}
	snap, cached, err := s.Memo.GetOrCompute(exam.ExamID, fp, func() (stats.Snapshot, error) {
		return s.compute(ctx, exam)
	})
	if err != nil {
		return Overview{}, err
	}
	return Overview{Exam: exam, Snapshot: snap, Cached: cached}, nil
}

func (s *OverviewService) compute(ctx context.Context, exam model.ExamModel) (stats.Snapshot, error) {
	var (
		roster      []stats.Student
		enrollments []stats.Enrollment
		results     []stats.Result
		tickets     []stats.HallTicket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roster, err = s.Source.FetchRoster(gctx, exam)
		return err
	})
	g.Go(func() (err error) {
		enrollments, err = s.Source.FetchEnrollments(gctx, exam.ExamID)
		return err
	})
	g.Go(func() (err error) {
		results, err = s.Source.FetchResults(gctx, exam.ExamID)
		return err
	})
	g.Go(func() (err error) {
		tickets, err = s.Source.FetchHallTickets(gctx, exam.ExamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats.Snapshot{}, fmt.Errorf("load exam %s: %w", exam.ExamID, err)
	}

	snap := Aggregate(exam, roster, enrollments, results, tickets)
	if !snap.Orphans.Empty() {
		s.Log.Warn("rows reference students outside the roster",
			zap.String("exam_id", exam.ExamID.String()),
			zap.Int("enrollments", len(snap.Orphans.Enrollments)),
			zap.Int("results", len(snap.Orphans.Results)),
			zap.Int("hall_tickets", len(snap.Orphans.HallTickets)),
		)
	}
	return snap, nil
}

// Aggregate runs the engine over already fetched rows.
func Aggregate(exam model.ExamModel, roster []stats.Student, enrollments []stats.Enrollment, results []stats.Result, tickets []stats.HallTicket) stats.Snapshot {
	idx := stats.BuildIndex(enrollments, results, tickets)
	merged := stats.MergeStudentStatus(roster, idx)
	return stats.Snapshot{
		Merged:  merged,
		Stats:   stats.ComputeStatistics(merged, exam.Context()),
		Orphans: stats.Orphans(roster, idx),
	}
}
