package services

import "errors"

// Категории ошибок. Каждая конкретная ошибка ниже разворачивается
// (errors.Is) в одну из них, по ним handlers выбирают HTTP-статус.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConnectivity     = errors.New("database is unavailable")
	ErrIntegrity        = errors.New("integrity constraint violated")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrFeatureDisabled      = errors.New("feature is not configured")
)

// categorized is a specific error that unwraps to its category.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }
func (e *categorized) Unwrap() error { return e.category }

func newError(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

// Не найдено
var (
	ErrTournamentNotFound  = newError(ErrNotFound, "tournament not found")
	ErrTeamNotFound        = newError(ErrNotFound, "team not found")
	ErrHomeTeamNotFound    = newError(ErrNotFound, "home team not found")
	ErrAwayTeamNotFound    = newError(ErrNotFound, "away team not found")
	ErrVenueNotFound       = newError(ErrNotFound, "venue not found")
	ErrMatchNotFound       = newError(ErrNotFound, "match not found")
	ErrRosterEntryNotFound = newError(ErrNotFound, "player is not registered in this tournament")
)

// Валидация и бизнес-правила
var (
	ErrTournamentNameRequired     = newError(ErrValidationFailed, "tournament name is required")
	ErrInvalidDate                = newError(ErrValidationFailed, "date must be in YYYY-MM-DD format")
	ErrTournamentInvalidDateRange = newError(ErrValidationFailed, "tournament start date must not be after end date")
	ErrTeamNameRequired           = newError(ErrValidationFailed, "team name is required")
	ErrInvalidPlayerCount         = newError(ErrValidationFailed, "initial player count must be between 0 and 50")
	ErrSameTeams                  = newError(ErrValidationFailed, "home and away teams must be different")
	ErrMatchDateOutOfRange        = newError(ErrValidationFailed, "match date must be within the tournament dates")
	ErrInvalidStage               = newError(ErrValidationFailed, "play stage must be G or F")
	ErrInvalidScore               = newError(ErrValidationFailed, "goals must be non-negative")
	ErrInvalidDecidedBy           = newError(ErrValidationFailed, "decided_by must be N or P")
	ErrInvalidAudience            = newError(ErrValidationFailed, "audience must be non-negative")
	ErrCaptainNotOnTeam           = newError(ErrValidationFailed, "captain must be a player on the team")
	ErrNotEnoughTeams             = newError(ErrValidationFailed, "at least two teams are needed in a group")
	ErrVenueInactive              = newError(ErrValidationFailed, "venue is not active")
)

// Конфликты
var (
	ErrTournamentNameConflict = newError(ErrIntegrity, "tournament name already exists")
	ErrTeamNameConflict       = newError(ErrIntegrity, "team name already exists")
	ErrTournamentInUse        = newError(ErrIntegrity, "tournament is still referenced by other rows")
)

// Аутентификация
var (
	ErrInvalidCredentials = newError(ErrAuthenticationFailed, "invalid username or password")
	ErrInvalidToken       = newError(ErrAuthenticationFailed, "invalid or expired token")
)
