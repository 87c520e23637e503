package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatSwiss             TournamentFormat = "swiss"
)

// ValidFormat reports whether f is one of the supported formats.
func ValidFormat(f TournamentFormat) bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin, FormatSwiss:
		return true
	}
	return false
}

type TournamentMode string

const (
	ModeSingles TournamentMode = "singles"
	ModeDoubles TournamentMode = "doubles"
)

// TeamSize returns the number of players per team for the mode.
func (m TournamentMode) TeamSize() int {
	if m == ModeDoubles {
		return 2
	}
	return 1
}

type TournamentStatus string

const (
	TournamentStatusSetup     TournamentStatus = "setup"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Tournament owns one bracket plus its configuration. Teams are frozen
// at creation time; the bracket is generated lazily on first view and
// re-serialized whole after every match edit.
type Tournament struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Format         TournamentFormat `json:"format"`
	Mode           TournamentMode   `json:"mode"`
	Sets           int              `json:"sets,omitempty"`
	Teams          []Team           `json:"teams"`
	Status         TournamentStatus `json:"status"`
	PointsPerMatch int              `json:"pointsPerMatch"`
	CurrentRound   int              `json:"currentRound"`
	CreatedAt      time.Time        `json:"createdAt"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`

	// Exactly one of the two is populated once a bracket exists:
	// Elimination for the double elimination format, Bracket otherwise.
	Bracket     Bracket                   `json:"bracket,omitempty"`
	Elimination *DoubleEliminationBracket `json:"elimination,omitempty"`
}

// HasBracket reports whether a bracket has been generated.
func (t *Tournament) HasBracket() bool {
	if t.Format == FormatDoubleElimination {
		return t.Elimination != nil
	}
	return len(t.Bracket) > 0
}

// TeamByID returns the live team entry from the frozen roster.
func (t *Tournament) TeamByID(id string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// MarshalBracket serializes the bracket to its persisted wire form: a
// round-keyed object, or {winners, losers, grandFinal} for double
// elimination. An absent bracket serializes as null.
func (t *Tournament) MarshalBracket() ([]byte, error) {
	if !t.HasBracket() {
		return []byte("null"), nil
	}
	if t.Format == FormatDoubleElimination {
		return json.Marshal(t.Elimination)
	}
	return json.Marshal(t.Bracket)
}

// UnmarshalBracket restores the bracket from its persisted form. Empty
// or null input leaves the tournament without a bracket.
func (t *Tournament) UnmarshalBracket(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if t.Format == FormatDoubleElimination {
		var de DoubleEliminationBracket
		if err := json.Unmarshal(data, &de); err != nil {
			return fmt.Errorf("unmarshal double elimination bracket: %w", err)
		}
		t.Elimination = &de
		return nil
	}
	var b Bracket
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("unmarshal bracket: %w", err)
	}
	if len(b) > 0 {
		t.Bracket = b
	}
	return nil
}
