package services

import "errors"

// Shared service errors, mapped to HTTP status codes in the handlers.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Validation and business rules
	ErrTournamentNameInvalid = errors.New("tournament name must be between 3 and 50 characters")
	ErrNameInvalid           = errors.New("name must be between 2 and 30 characters")
	ErrNotEnoughPlayers      = errors.New("not enough players for the selected mode")
	ErrInvalidFormat         = errors.New("invalid tournament format")
	ErrInvalidMode           = errors.New("invalid tournament mode")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrInvalidEditField      = errors.New("unknown match edit field")
	ErrInvalidEditValue      = errors.New("invalid match edit value")
	ErrWinnerLocked          = errors.New("winner already advanced into a decided match")
	ErrBracketNotGenerated   = errors.New("tournament bracket has not been generated yet")

	// Conflicts
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrPlayerNameConflict     = errors.New("player name already exists")
	ErrUserEmailConflict      = errors.New("email address is already in use")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found errors
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrUserNotFound       = errors.New("user not found")
)
