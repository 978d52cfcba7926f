package scoring

// Engine applies one point-won event to a score snapshot and returns the
// next snapshot. Engines are pure: same input, same output, no shared state,
// safe to call concurrently for different matches. For a single match the
// caller serializes submissions: применение очков не коммутативно.
type Engine interface {
	ApplyPoint(state ScoreState, pointWinner Side) (ScoreState, error)
}

// Таблица маршрутизации. Open IRT сюда не входит: у него другой снимок
// (OpenIRTScoreState) и его вызывают явно.
var engines = map[Sport]Engine{
	SportPadel:       PadelEngine{},
	SportRacquetball: RacquetballEngine{},
}

// SelectEngine returns the engine for the given sport key, or
// InvalidSportError for an unknown key. No silent default.
func SelectEngine(sport Sport) (Engine, error) {
	engine, ok := engines[sport]
	if !ok {
		return nil, &InvalidSportError{Sport: sport}
	}
	return engine, nil
}

// CalculateScore routes one point-won event to the engine selected by sport.
func CalculateScore(sport Sport, state ScoreState, pointWinner Side) (ScoreState, error) {
	engine, err := SelectEngine(sport)
	if err != nil {
		return state, err
	}
	return engine.ApplyPoint(state, pointWinner)
}
