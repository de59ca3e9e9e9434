package repository

import "errors"

var (
	ErrExamNotFound  = errors.New("exam not found")
	ErrMalformedExam = errors.New("exam max marks must be positive")
)
