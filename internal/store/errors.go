package store

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoQueueAvailable = errors.New("no queue available")
	ErrCodeNotFound     = errors.New("code not found")
	ErrAlreadyUsed      = errors.New("code already used")
	ErrOutOfWindow      = errors.New("outside check-in window")
	ErrInvalidState     = errors.New("invalid status transition")
)
