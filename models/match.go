package models

import "time"

type MatchStatus string

const (
	StatusScheduled      MatchStatus = "scheduled"
	StatusInProgress     MatchStatus = "in_progress"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCanceled  MatchStatus = "canceled"
)

// Match представляет одиночный матч между двумя игроками. Score хранит текущий снимок
// счёта (scoring.ScoreState или scoring.OpenIRTScoreState) как JSON; движки
// сам формат не интерпретируют, это забота сервисного слоя.
type Match struct {
	ID        int         `json:"id"`
	SportID   int         `json:"sport_id"`
	P1ID      int         `json:"p1_id"`
	P2ID      int         `json:"p2_id"`
	Score     *string     `json:"score,omitempty"`
	ServerID  *int        `json:"server_id,omitempty"` // только для open_irt
	Status    MatchStatus `json:"status"`
	WinnerID  *int        `json:"winner_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`

	// Заполняется сервисом при отдаче деталей, в БД не хранится.
	Sport *Sport `json:"sport,omitempty"`
}
