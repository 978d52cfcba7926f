package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrMatchFinished возвращается, если очко подано после того, как у матча
	// уже есть победитель. Снимок при этом возвращается без изменений:
	// движок не продолжает наращивать геймы и сеты завершённого матча.
	ErrMatchFinished = errors.New("match already has a winner")

	// ErrInvalidSide: pointWinner не является ни player1, ни player2.
	ErrInvalidSide = errors.New("point winner must be player1 or player2")
)

// InvalidSportError signals that no engine is registered for the given sport
// key. The dispatcher never falls back to a default engine: an unknown key is
// a programming error on the caller's side.
type InvalidSportError struct {
	Sport Sport
}

func (e *InvalidSportError) Error() string {
	return fmt.Sprintf("no scoring engine registered for sport %q", string(e.Sport))
}

// CorruptStateError signals that an incoming snapshot carries a score field
// outside its documented domain (unknown ladder marker, non-numeric or
// negative rally count, server id matching neither player). Engines reject
// such snapshots instead of coercing the field to zero.
type CorruptStateError struct {
	Field string
	Value string
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt score state: field %s has invalid value %q", e.Field, e.Value)
}
