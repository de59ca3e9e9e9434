// file: internals/cli/stats.go
package cli

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "examku_backend/internals/databases"
	"examku_backend/internals/features/exams/repository"
	"examku_backend/internals/features/exams/service"
	"examku_backend/internals/features/exams/stats"
)

var (
	statsSchool string
	statsExam   string
	statsRaw    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print an exam's statistics as JSON",
	Long: `Loads one exam with its roster, enrollments, results and hall tickets,
merges them and prints the statistics (rounded unless --raw).

Example:
  examku stats --school 6f0e... --exam 0b8a...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schoolID, err := uuid.Parse(statsSchool)
		if err != nil {
			return fmt.Errorf("--school: %w", err)
		}
		examID, err := uuid.Parse(statsExam)
		if err != nil {
			return fmt.Errorf("--exam: %w", err)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		svc := service.NewOverviewService(repository.NewExamRepository(db), stats.NewMemo(1), logger)
		ov, err := svc.Load(cmd.Context(), schoolID, examID)
		if err != nil {
			return err
		}

		out, err := renderStats(ov, statsRaw)
		if err != nil {
			return err
		}
		logger.Debug("stats computed", zap.Int("students", len(ov.Snapshot.Merged)))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSchool, "school", "", "school id")
	statsCmd.Flags().StringVar(&statsExam, "exam", "", "exam id")
	statsCmd.Flags().BoolVar(&statsRaw, "raw", false, "print unrounded values")
	_ = statsCmd.MarkFlagRequired("school")
	_ = statsCmd.MarkFlagRequired("exam")
}

func renderStats(ov service.Overview, raw bool) ([]byte, error) {
	st := ov.Snapshot.Stats
	if !raw {
		st = st.Rounded()
	}
	return sonic.ConfigStd.MarshalIndent(map[string]any{
		"exam_id":    ov.Exam.ExamID,
		"title":      ov.Exam.ExamTitle,
		"statistics": st,
		"orphans":    ov.Snapshot.Orphans.Total(),
	}, "", "  ")
}
