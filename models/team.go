package models

// Team groups 1-2 players depending on the tournament mode. Once a team
// is placed into a bracket its data is copied by value into match
// records, so altering the roster later does not rewrite history.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
	Wins    int      `json:"wins"`
	Losses  int      `json:"losses"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// Snapshot returns an owned deep copy of the team, suitable for
// embedding into a match record.
func (t *Team) Snapshot() *Team {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Players = make([]Player, len(t.Players))
	copy(cp.Players, t.Players)
	return &cp
}
