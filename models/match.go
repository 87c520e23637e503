package models

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "Pending"
	MatchStatusOngoing   MatchStatus = "Ongoing"
	MatchStatusCompleted MatchStatus = "Completed"
)

// Match is a single pairing inside a bracket. Team slots are nullable:
// nil means the slot is not yet determined, or a bye when the match is
// already decided. Position is the stable 1-based slot index within the
// round and drives advancement arithmetic.
type Match struct {
	ID           string      `json:"id"`
	TournamentID string      `json:"tournamentId"`
	Team1        *Team       `json:"team1"`
	Team2        *Team       `json:"team2"`
	Team1Score   int         `json:"team1Score"`
	Team2Score   int         `json:"team2Score"`
	Winner       *string     `json:"winner"`
	Status       MatchStatus `json:"status"`
	Position     int         `json:"position"`
}

// Decided reports whether the match has a recorded winner.
func (m *Match) Decided() bool {
	return m.Winner != nil
}

// TeamByID returns the side whose team id matches, or nil.
func (m *Match) TeamByID(id string) *Team {
	if m.Team1 != nil && m.Team1.ID == id {
		return m.Team1
	}
	if m.Team2 != nil && m.Team2.ID == id {
		return m.Team2
	}
	return nil
}

// OpponentOf returns the other side relative to the given team id, or
// nil for a bye.
func (m *Match) OpponentOf(id string) *Team {
	if m.Team1 != nil && m.Team1.ID == id {
		return m.Team2
	}
	if m.Team2 != nil && m.Team2.ID == id {
		return m.Team1
	}
	return nil
}

// WinnerTeam returns the embedded team snapshot of the recorded winner,
// or nil when the match is undecided.
func (m *Match) WinnerTeam() *Team {
	if m.Winner == nil {
		return nil
	}
	return m.TeamByID(*m.Winner)
}

// LoserTeam returns the snapshot of the side that lost, or nil for an
// undecided match or a bye.
func (m *Match) LoserTeam() *Team {
	if m.Winner == nil {
		return nil
	}
	return m.OpponentOf(*m.Winner)
}
