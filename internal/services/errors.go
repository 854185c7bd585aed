package services

import "errors"

var (
	// ErrUnauthorized covers every access gate failure. Callers must not
	// learn which check failed.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrNoProfile     = errors.New("profile not found")
	ErrProfileExists = errors.New("profile already exists")

	// ErrHistoryNotFound is returned both for missing entries and for
	// entries owned by another profile.
	ErrHistoryNotFound = errors.New("history entry not found")

	ErrQuestNotFound   = errors.New("quest not found")
	ErrQuestIncomplete = errors.New("quest not completed yet")
	ErrQuestClaimed    = errors.New("quest reward already claimed for this period")

	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrPersistence   = errors.New("failed to persist changes")
)
