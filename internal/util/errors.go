package util

import "errors"

var (
	ErrEmailRegistered = errors.New("email already registered")

	ErrUnknownMarket    = errors.New("unknown market")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrScopeMismatch    = errors.New("selection outside the active market scope")
	ErrInvalidLevel     = errors.New("invalid question level")
	ErrInvalidExercise  = errors.New("invalid exercise payload")
	ErrRelatedQuestion  = errors.New("related question does not belong to the exercise section")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
