package brackets

import (
	"errors"
	"fmt"

	"github.com/smashscore/smashscore/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found in bracket")
	ErrUnknownTeam      = errors.New("winner is not a participant of the match")
	ErrWinnerPropagated = errors.New("winner already advanced into a decided match")
)

// EditSide selects which score of a match an edit targets. Its values
// mirror the slot parity used for advancement: even feeder positions
// fill team1, odd fill team2.
type EditSide int

const (
	Team1Side EditSide = iota
	Team2Side
)

// MatchEdit is one user scoring action against a single match. The two
// concrete kinds are a score entry and a direct winner override.
type MatchEdit interface {
	isMatchEdit()
}

// ScoreEdit sets one side's score. The value is clamped to
// [0, pointsPerMatch] and the match winner is recomputed from scratch
// from the two stored scores, so repeating the same edit is a no-op.
type ScoreEdit struct {
	Side  EditSide
	Value int
}

func (ScoreEdit) isMatchEdit() {}

// WinnerEdit overrides the match winner directly, for bracket-click
// flows that do not track scores. A nil Winner clears the decision.
type WinnerEdit struct {
	Winner *string
}

func (WinnerEdit) isMatchEdit() {}

// EditOutcome reports everything a single edit changed beyond the
// bracket itself.
type EditOutcome struct {
	Match *models.Match

	// Adjustments are the team and player counter deltas implied by
	// every winner change the edit caused, including unwound downstream
	// matches and auto-completed byes. The caller persists them
	// together with the bracket.
	Adjustments []StatAdjustment

	// NewRound holds swiss matches generated because the edit completed
	// the newest round.
	NewRound []*models.Match

	// Completed reports whether the tournament is now fully decided.
	Completed bool
}

// ApplyMatchEdit applies one edit to one match of the tournament's
// bracket, recomputes the match winner, propagates the consequences
// through elimination rounds and swiss regeneration, and keeps the
// tournament's team counters in step. The tournament is mutated in
// place; persistence is the caller's job.
func ApplyMatchEdit(t *models.Tournament, matchID string, edit MatchEdit) (*EditOutcome, error) {
	m, loc, ok := locate(t, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	oldWinner := cloneWinner(m.Winner)
	eng := &engine{t: t}

	var newWinner *string
	switch e := edit.(type) {
	case ScoreEdit:
		value := e.Value
		if value < 0 {
			value = 0
		}
		if t.PointsPerMatch > 0 && value > t.PointsPerMatch {
			value = t.PointsPerMatch
		}
		if e.Side == Team1Side {
			m.Team1Score = value
		} else {
			m.Team2Score = value
		}
		newWinner = decideWinner(m, t.PointsPerMatch)
	case WinnerEdit:
		if e.Winner != nil && m.TeamByID(*e.Winner) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, *e.Winner)
		}
		if equalWinner(oldWinner, e.Winner) {
			return &EditOutcome{Match: m, Completed: t.Status == models.TournamentStatusCompleted}, nil
		}
		if e.Winner == nil && isElimination(t.Format) && eng.downstreamDecided(m, loc) {
			return nil, ErrWinnerPropagated
		}
		newWinner = cloneWinner(e.Winner)
	default:
		return nil, fmt.Errorf("unsupported match edit %T", edit)
	}

	changed := !equalWinner(oldWinner, newWinner)
	if changed && oldWinner != nil && isElimination(t.Format) {
		eng.retract(m, loc)
	}
	if changed {
		eng.reconcile(oldWinner, newWinner, m)
	}
	m.Winner = newWinner
	m.Status = matchStatus(m)
	if changed && newWinner != nil && isElimination(t.Format) {
		eng.advance(m, loc)
	}

	outcome := &EditOutcome{Match: m}

	if t.Format == models.FormatSwiss && changed {
		for {
			matches, byes := NextSwissRound(t)
			if matches == nil {
				break
			}
			outcome.NewRound = append(outcome.NewRound, matches...)
			for _, bye := range byes {
				eng.reconcile(nil, bye.Winner, bye)
			}
			t.CurrentRound = t.Bracket.MaxRound()
			if !allDecided(matches) {
				break
			}
		}
	}

	outcome.Adjustments = eng.adjustments
	outcome.Completed = refreshCompletion(t)
	return outcome, nil
}

// decideWinner recomputes a match winner purely from its scores: a side
// wins iff its score meets the threshold and strictly exceeds the
// opponent's. With no threshold configured any lead decides.
func decideWinner(m *models.Match, threshold int) *string {
	reaches := func(score, other int) bool {
		return (threshold <= 0 || score >= threshold) && score > other
	}
	if m.Team1 != nil && reaches(m.Team1Score, m.Team2Score) {
		id := m.Team1.ID
		return &id
	}
	if m.Team2 != nil && reaches(m.Team2Score, m.Team1Score) {
		id := m.Team2.ID
		return &id
	}
	return nil
}

func matchStatus(m *models.Match) models.MatchStatus {
	switch {
	case m.Winner != nil:
		return models.MatchStatusCompleted
	case m.Team1Score > 0 || m.Team2Score > 0:
		return models.MatchStatusOngoing
	default:
		return models.MatchStatusPending
	}
}

// refreshCompletion syncs the tournament status to its bracket,
// reverting a completed tournament back to active when an unwind
// un-decides it.
func refreshCompletion(t *models.Tournament) bool {
	complete := bracketComplete(t)
	if complete {
		t.Status = models.TournamentStatusCompleted
	} else if t.Status == models.TournamentStatusCompleted {
		t.Status = models.TournamentStatusActive
	}
	return complete
}

func bracketComplete(t *models.Tournament) bool {
	switch t.Format {
	case models.FormatDoubleElimination:
		return t.Elimination != nil && t.Elimination.GrandFinal != nil && t.Elimination.GrandFinal.Decided()
	case models.FormatSwiss:
		if t.Bracket.MaxRound() == 0 || !t.Bracket.AllDecided() {
			return false
		}
		if t.Bracket.MaxRound() >= t.Sets {
			return true
		}
		return pairsExhausted(t.Teams, playedPairs(t.Bracket))
	default:
		return t.Bracket.MaxRound() > 0 && t.Bracket.AllDecided()
	}
}

func isElimination(format models.TournamentFormat) bool {
	return format == models.FormatSingleElimination || format == models.FormatDoubleElimination
}

func allDecided(matches []*models.Match) bool {
	for _, m := range matches {
		if !m.Decided() {
			return false
		}
	}
	return true
}

func cloneWinner(w *string) *string {
	if w == nil {
		return nil
	}
	id := *w
	return &id
}
