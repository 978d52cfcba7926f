package scoring

// Side обозначает одну из двух сторон матча (игрок или пара).
type Side string

const (
	SidePlayer1 Side = "player1"
	SidePlayer2 Side = "player2"
)

func (s Side) Valid() bool {
	return s == SidePlayer1 || s == SidePlayer2
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer1 {
		return SidePlayer2
	}
	return SidePlayer1
}

// Sport задаёт ключ правил подсчёта очков. Хранится в реестре видов спорта
// (models.Sport.Rules) и выбирает движок в диспетчере.
type Sport string

const (
	SportPadel       Sport = "padel"
	SportRacquetball Sport = "racquetball"
	// SportOpenIRT is not routed through the generic dispatcher: server-aware
	// callers invoke OpenIRTEngine explicitly with OpenIRTScoreState.
	SportOpenIRT Sport = "open_irt"
)

// PointValue is a closed enumeration of score markers. Padel uses the
// 0/15/30/40/AD ladder; racquetball stores plain integers in the same slot
// and parses them on entry. PointNone is only legal while the opponent
// holds PointAdvantage (deuce-then-ahead).
type PointValue string

const (
	PointLove      PointValue = "0"
	PointFifteen   PointValue = "15"
	PointThirty    PointValue = "30"
	PointForty     PointValue = "40"
	PointAdvantage PointValue = "AD"
	PointNone      PointValue = ""
)

func (p PointValue) ladderValid() bool {
	switch p {
	case PointLove, PointFifteen, PointThirty, PointForty, PointAdvantage, PointNone:
		return true
	}
	return false
}

// ScoreState is an immutable snapshot of a padel or racquetball match.
// Engines never mutate it: every transition builds and returns a new value.
// Winner markers are set only on the transition that completes the unit and
// are empty on every other snapshot.
type ScoreState struct {
	Player1Score PointValue `json:"player1_score"`
	Player2Score PointValue `json:"player2_score"`
	Player1Games int        `json:"player1_games"`
	Player2Games int        `json:"player2_games"`
	Player1Sets  int        `json:"player1_sets"`
	Player2Sets  int        `json:"player2_sets"`
	CurrentSet   int        `json:"current_set"`
	GameWinner   Side       `json:"game_winner,omitempty"`
	SetWinner    Side       `json:"set_winner,omitempty"`
	MatchWinner  Side       `json:"match_winner,omitempty"`
}

// NewScoreState возвращает стартовый снимок: 0-0, первый сет, без победителей.
func NewScoreState() ScoreState {
	return ScoreState{
		Player1Score: PointLove,
		Player2Score: PointLove,
		CurrentSet:   1,
	}
}

func (s ScoreState) score(side Side) PointValue {
	if side == SidePlayer1 {
		return s.Player1Score
	}
	return s.Player2Score
}

func (s ScoreState) withScore(side Side, v PointValue) ScoreState {
	if side == SidePlayer1 {
		s.Player1Score = v
	} else {
		s.Player2Score = v
	}
	return s
}

func (s ScoreState) games(side Side) int {
	if side == SidePlayer1 {
		return s.Player1Games
	}
	return s.Player2Games
}

func (s ScoreState) sets(side Side) int {
	if side == SidePlayer1 {
		return s.Player1Sets
	}
	return s.Player2Sets
}

// clearWinners снимает маркеры победителей перед применением перехода.
func (s ScoreState) clearWinners() ScoreState {
	s.GameWinner = ""
	s.SetWinner = ""
	s.MatchWinner = ""
	return s
}

// OpenIRTScoreState is the rally-only snapshot for the Open IRT ruleset.
// ServerID is the pivot of every scoring decision: only the side holding
// serve can score, so the snapshot carries stable player identities to
// resolve "did the point winner hold serve".
type OpenIRTScoreState struct {
	Player1Score  int  `json:"player1_score"`
	Player2Score  int  `json:"player2_score"`
	Player1Sets   int  `json:"player1_sets"`
	Player2Sets   int  `json:"player2_sets"`
	CurrentSet    int  `json:"current_set"`
	ServerID      int  `json:"server_id"`
	Player1ID     int  `json:"player1_id"`
	Player2ID     int  `json:"player2_id"`
	ServerChanged bool `json:"server_changed"`
	SetWinner     Side `json:"set_winner,omitempty"`
	MatchWinner   Side `json:"match_winner,omitempty"`
}

// NewOpenIRTScoreState возвращает стартовый снимок Open IRT матча.
// serverID должен совпадать с одним из идентификаторов игроков.
func NewOpenIRTScoreState(player1ID, player2ID, serverID int) OpenIRTScoreState {
	return OpenIRTScoreState{
		CurrentSet: 1,
		ServerID:   serverID,
		Player1ID:  player1ID,
		Player2ID:  player2ID,
	}
}

func (s OpenIRTScoreState) playerID(side Side) int {
	if side == SidePlayer1 {
		return s.Player1ID
	}
	return s.Player2ID
}

func (s OpenIRTScoreState) points(side Side) int {
	if side == SidePlayer1 {
		return s.Player1Score
	}
	return s.Player2Score
}

func (s OpenIRTScoreState) sets(side Side) int {
	if side == SidePlayer1 {
		return s.Player1Sets
	}
	return s.Player2Sets
}
