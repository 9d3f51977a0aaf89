package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrMembershipRequired     = errors.New("a pro membership is required for this operation")
	ErrMembershipInvalidTier  = errors.New("unknown membership tier")

	// Ошибки валидации
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrUnknownCountryCode     = errors.New("unknown country code")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrWorldNotFound      = errors.New("world not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Ошибки бизнес-правил турнира
	ErrTournamentNotDraft      = errors.New("tournament has left draft state, teams are locked")
	ErrTournamentFull          = errors.New("tournament already has the maximum number of teams")
	ErrTeamCountryConflict     = errors.New("country is already entered in this tournament")
	ErrHostCannotBeRemoved     = errors.New("the host team cannot be removed")
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")

	// Ошибки жеребьёвки
	ErrNoPotsGenerated      = errors.New("no pots found, generate pots first")
	ErrInvalidPotNumber     = errors.New("pot number must be between 1 and 4")
	ErrPotAlreadyDrawn      = errors.New("all teams of this pot are already drawn")
	ErrTeamAlreadyDrawn     = errors.New("team is already assigned to a group")
	ErrGroupFull            = errors.New("group already has four teams")
	ErrGroupsNotInitialized = errors.New("groups are not initialized for this tournament")

	// Ошибки группового этапа
	ErrGroupIncomplete         = errors.New("group is incomplete")
	ErrFixturesNotGenerated    = errors.New("fixtures are not generated yet")
	ErrMatchAlreadyCompleted   = errors.New("match is already completed")
	ErrInvalidMatchday         = errors.New("matchday must be between 1 and 3")
	ErrMatchTournamentMismatch = errors.New("match does not belong to this tournament")
)
