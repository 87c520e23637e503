package models

import "time"

// Player is a registered player with a cumulative win/loss record.
// The counters are mutated only through stats reconciliation when a
// match outcome involving the player's team changes.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	CreatedAt time.Time `json:"createdAt"`
}

// WinRate returns the player's win percentage rounded to the nearest
// whole number, or 0 when no matches have been recorded.
func (p Player) WinRate() int {
	total := p.Wins + p.Losses
	if total == 0 {
		return 0
	}
	return int(float64(p.Wins)/float64(total)*100 + 0.5)
}
