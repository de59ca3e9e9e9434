package model

// Tables lists every model migrated by `examku migrate`.
func Tables() []any {
	return []any{
		&SchoolStudentModel{},
		&ExamModel{},
		&ExamEnrollmentModel{},
		&ExamResultModel{},
		&ExamHallTicketModel{},
		&ExamNotificationModel{},
	}
}
