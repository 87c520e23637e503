package brackets

import (
	"github.com/smashscore/smashscore/models"
)

// section identifies which part of a bracket a match lives in. Single
// elimination, round robin and swiss brackets are all winnersSection.
type section int

const (
	winnersSection section = iota
	losersSection
	finalSection
)

type location struct {
	section section
	round   int
}

func locate(t *models.Tournament, matchID string) (*models.Match, location, bool) {
	if t.Format == models.FormatDoubleElimination {
		if t.Elimination == nil {
			return nil, location{}, false
		}
		if m, r, ok := t.Elimination.Winners.FindMatch(matchID); ok {
			return m, location{winnersSection, r}, true
		}
		if m, r, ok := t.Elimination.Losers.FindMatch(matchID); ok {
			return m, location{losersSection, r}, true
		}
		if gf := t.Elimination.GrandFinal; gf != nil && gf.ID == matchID {
			return gf, location{finalSection, 0}, true
		}
		return nil, location{}, false
	}
	m, r, ok := t.Bracket.FindMatch(matchID)
	return m, location{winnersSection, r}, ok
}

// parentPosition maps a feeder's 1-based position to its parent's
// position in the next round.
func parentPosition(pos int) int {
	return (pos-1)/2 + 1
}

// slotSide maps a feeder's position to the parent slot it fills: even
// feeder index goes to team1, odd to team2.
func slotSide(pos int) EditSide {
	return EditSide((pos - 1) % 2)
}

func setSlot(m *models.Match, side EditSide, team *models.Team) {
	if side == Team1Side {
		m.Team1 = team
	} else {
		m.Team2 = team
	}
}

func slotTeam(m *models.Match, side EditSide) *models.Team {
	if side == Team1Side {
		return m.Team1
	}
	return m.Team2
}

// engine carries one edit's propagation state: the accumulated stat
// adjustments are applied to the tournament's team records as they are
// produced, so advancement snapshots and swiss standings always see
// current counters.
type engine struct {
	t           *models.Tournament
	adjustments []StatAdjustment
}

func (e *engine) reconcile(oldWinner, newWinner *string, m *models.Match) {
	adj := Reconcile(oldWinner, newWinner, m)
	e.adjustments = append(e.adjustments, adj...)
	ApplyAdjustments(e.t, adj)
}

func (e *engine) isDouble() bool {
	return e.t.Format == models.FormatDoubleElimination
}

func (e *engine) winners() models.Bracket {
	if e.isDouble() {
		return e.t.Elimination.Winners
	}
	return e.t.Bracket
}

func (e *engine) losers() models.Bracket {
	if e.isDouble() {
		return e.t.Elimination.Losers
	}
	return nil
}

func (e *engine) grandFinal() *models.Match {
	if e.isDouble() {
		return e.t.Elimination.GrandFinal
	}
	return nil
}

// teamSnapshot copies a team with its current counters, preferring the
// tournament's live record over the possibly stale copy in the match.
func (e *engine) teamSnapshot(id string, m *models.Match) *models.Team {
	if team := e.t.TeamByID(id); team != nil {
		return team.Snapshot()
	}
	if team := m.TeamByID(id); team != nil {
		return team.Snapshot()
	}
	return nil
}

// advance carries a freshly decided match's winner into its dependent
// match and, in a double elimination winners bracket, drops the loser
// into the losers bracket.
func (e *engine) advance(m *models.Match, loc location) {
	winner := e.teamSnapshot(*m.Winner, m)

	switch loc.section {
	case winnersSection:
		if loc.round < e.winners().MaxRound() {
			parent := e.winners().MatchAt(loc.round+1, parentPosition(m.Position))
			if parent != nil {
				setSlot(parent, slotSide(m.Position), winner)
				e.resolveDeferredBye(parent, loc.round+1, m.Position)
			}
		} else if gf := e.grandFinal(); gf != nil {
			gf.Team1 = winner
		}
		if e.isDouble() {
			e.dropLoser(m, loc.round)
		}
	case losersSection:
		if loc.round%2 == 1 {
			if parent := e.losers().MatchAt(loc.round+1, m.Position); parent != nil {
				setSlot(parent, Team1Side, winner)
			}
		} else if parent := e.losers().MatchAt(loc.round+1, parentPosition(m.Position)); parent != nil {
			setSlot(parent, slotSide(m.Position), winner)
		} else if gf := e.grandFinal(); gf != nil {
			gf.Team2 = winner
		}
	case finalSection:
		// Nothing downstream of the grand final.
	}
}

// retract removes everything the match's previous decision had pushed
// downstream. Slots are identified purely by position parity, so the
// same walk works whether the winner is being cleared or replaced.
func (e *engine) retract(m *models.Match, loc location) {
	switch loc.section {
	case winnersSection:
		if loc.round < e.winners().MaxRound() {
			parent := e.winners().MatchAt(loc.round+1, parentPosition(m.Position))
			if parent != nil {
				e.clearSlot(parent, location{winnersSection, loc.round + 1}, slotSide(m.Position))
			}
		} else if gf := e.grandFinal(); gf != nil {
			e.clearSlot(gf, location{finalSection, 0}, Team1Side)
		}
		if e.isDouble() {
			if e.losers().MaxRound() == 0 {
				if gf := e.grandFinal(); gf != nil {
					e.clearSlot(gf, location{finalSection, 0}, Team2Side)
				}
			} else if target, side, dropRound := e.loserDropSlot(loc.round, m.Position); target != nil {
				e.clearSlot(target, location{losersSection, dropRound}, side)
			}
		}
	case losersSection:
		if loc.round%2 == 1 {
			if parent := e.losers().MatchAt(loc.round+1, m.Position); parent != nil {
				e.clearSlot(parent, location{losersSection, loc.round + 1}, Team1Side)
			}
		} else if parent := e.losers().MatchAt(loc.round+1, parentPosition(m.Position)); parent != nil {
			e.clearSlot(parent, location{losersSection, loc.round + 1}, slotSide(m.Position))
		} else if gf := e.grandFinal(); gf != nil {
			e.clearSlot(gf, location{finalSection, 0}, Team2Side)
		}
	case finalSection:
	}
}

// clearSlot empties one side of a dependent match, resets its scores,
// reverses its own decision if it had one, and recurses into whatever
// that decision had advanced. Termination is guaranteed by finite
// bracket depth.
func (e *engine) clearSlot(m *models.Match, loc location, side EditSide) {
	if slotTeam(m, side) == nil && m.Winner == nil && m.Team1Score == 0 && m.Team2Score == 0 {
		return
	}

	decided := m.Winner != nil
	if decided {
		e.reconcile(m.Winner, nil, m)
	}
	setSlot(m, side, nil)
	m.Team1Score, m.Team2Score = 0, 0
	m.Winner = nil
	m.Status = models.MatchStatusPending
	if decided {
		e.retract(m, loc)
	}
}

// dropLoser routes a winners-bracket loser into the losers bracket.
// Byes have no loser. With no losers bracket at all the loser goes
// straight to the grand final.
func (e *engine) dropLoser(m *models.Match, round int) {
	loser := m.LoserTeam()
	if loser == nil {
		return
	}
	if e.losers().MaxRound() == 0 {
		if gf := e.grandFinal(); gf != nil {
			gf.Team2 = e.teamSnapshot(loser.ID, m)
		}
		return
	}
	target, side, _ := e.loserDropSlot(round, m.Position)
	if target == nil {
		return
	}
	setSlot(target, side, e.teamSnapshot(loser.ID, m))
}

// loserDropSlot maps a winners-bracket match to the losers slot its
// loser falls into. Round 1 losers pair with each other in losers round
// 1 by feeder parity; the loser of winners round r thereafter enters
// losers round 2(r-1) at its own position, opposite a survivor of the
// previous losers round, so no two teams ever contend for one slot.
func (e *engine) loserDropSlot(round, pos int) (*models.Match, EditSide, int) {
	if round == 1 {
		return e.losers().MatchAt(1, parentPosition(pos)), slotSide(pos), 1
	}
	dropRound := 2 * (round - 1)
	return e.losers().MatchAt(dropRound, pos), Team2Side, dropRound
}

// resolveDeferredBye completes a dependent match immediately when its
// other feeder slot was skipped at generation time, so the arriving
// team has no possible opponent. The bye win is credited and the team
// advances onward at once.
func (e *engine) resolveDeferredBye(parent *models.Match, parentRound, feederPos int) {
	if parent.Winner != nil {
		return
	}
	sibling := feederPos + 1
	if slotSide(feederPos) == Team2Side {
		sibling = feederPos - 1
	}
	if e.winners().MatchAt(parentRound-1, sibling) != nil {
		return
	}
	side := slotSide(feederPos)
	team := slotTeam(parent, side)
	if team == nil || slotTeam(parent, 1-side) != nil {
		return
	}

	completeBye(parent, team)
	e.reconcile(nil, parent.Winner, parent)
	e.advance(parent, location{winnersSection, parentRound})
}

// downstreamDecided reports whether any match fed by this one has
// already been decided by play, which blocks an explicit winner clear.
func (e *engine) downstreamDecided(m *models.Match, loc location) bool {
	switch loc.section {
	case winnersSection:
		if loc.round < e.winners().MaxRound() {
			parent := e.winners().MatchAt(loc.round+1, parentPosition(m.Position))
			if e.blockedBy(parent, location{winnersSection, loc.round + 1}) {
				return true
			}
		} else if e.blockedBy(e.grandFinal(), location{finalSection, 0}) {
			return true
		}
		if e.isDouble() {
			target, _, dropRound := e.loserDropSlot(loc.round, m.Position)
			if e.blockedBy(target, location{losersSection, dropRound}) {
				return true
			}
		}
	case losersSection:
		if loc.round%2 == 1 {
			parent := e.losers().MatchAt(loc.round+1, m.Position)
			return e.blockedBy(parent, location{losersSection, loc.round + 1})
		}
		if parent := e.losers().MatchAt(loc.round+1, parentPosition(m.Position)); parent != nil {
			return e.blockedBy(parent, location{losersSection, loc.round + 1})
		}
		return e.blockedBy(e.grandFinal(), location{finalSection, 0})
	case finalSection:
	}
	return false
}

// blockedBy reports whether target pins an upstream decision in place.
// A match auto-completed as a bye has only one team; it is transparent,
// blocking only if something it advanced into was decided by play.
func (e *engine) blockedBy(target *models.Match, loc location) bool {
	if target == nil || target.Winner == nil {
		return false
	}
	if target.Team1 != nil && target.Team2 != nil {
		return true
	}
	return e.downstreamDecided(target, loc)
}
