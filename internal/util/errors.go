package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrContestNotFound       = errors.New("contest not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrContestNotStarted     = errors.New("contest not started")
	ErrContestEnded          = errors.New("contest already ended")
	ErrAlreadyJoined         = errors.New("already joined this contest")
	ErrAlreadySubmitted      = errors.New("answers already submitted")
	ErrJoinCodeTaken         = errors.New("join code already in use")
	ErrInvalidJoinCode       = errors.New("invalid join code")
	ErrInvalidQuestion       = errors.New("question must have 4 options and correct answers matching them")
	ErrInvalidTimeWindow     = errors.New("end time must be after start time")
	ErrInvalidContest        = errors.New("contest title is required")
)
