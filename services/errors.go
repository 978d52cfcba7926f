package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidPointWinner    = errors.New("point winner must be player1 or player2")
	ErrMatchAlreadyFinished  = errors.New("match already has a winner")
	ErrMatchNotInProgress    = errors.New("match is not accepting points")
	ErrMatchPlayersRequired  = errors.New("both match players are required")
	ErrMatchSamePlayer       = errors.New("a match requires two distinct players")
	ErrMatchServerRequired   = errors.New("open IRT match requires a starting server")
	ErrMatchServerNotPlaying = errors.New("starting server must be one of the match players")
	ErrScoreStateCorrupt     = errors.New("stored score state is corrupt")
	ErrSportRulesInvalid     = errors.New("sport has no scoring engine for its rules")

	// Ошибки конфликтов
	ErrSportNameConflict = errors.New("sport name already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrInvalidPassphrase    = errors.New("invalid passphrase")

	// Ошибки, специфичные для сущностей
	ErrSportNotFound = errors.New("sport not found")
	ErrMatchNotFound = errors.New("match not found")
)
