package models

import "github.com/Dosada05/racket-tournament-system/scoring"

// Sport представляет вид спорта в реестре. Rules хранит ключ правил подсчёта
// очков, который потребляет диспетчер движков.
type Sport struct {
	ID    int           `json:"id" db:"id"`
	Name  string        `json:"name" db:"name"`
	Rules scoring.Sport `json:"rules" db:"rules"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
