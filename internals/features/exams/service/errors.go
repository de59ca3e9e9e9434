package service

import "errors"

var (
	ErrActionInFlight  = errors.New("another bulk action is running for this exam")
	ErrUnknownAction   = errors.New("unknown bulk action")
	ErrNotEnrolled     = errors.New("student is not enrolled in this exam")
	ErrMarksOutOfRange = errors.New("obtained marks out of range")
	ErrNotRostered     = errors.New("student is not on the exam roster")
)
