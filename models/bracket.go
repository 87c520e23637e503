package models

import "sort"

// Bracket maps a 1-based round (or set) number to the ordered matches of
// that round. Within a round the order is stable: the match at slot i
// feeds the match at slot i/2 of the next round in elimination formats.
//
// encoding/json marshals the integer keys as strings, which is exactly
// the persisted wire format.
type Bracket map[int][]*Match

// Rounds returns the round numbers in ascending order.
func (b Bracket) Rounds() []int {
	rounds := make([]int, 0, len(b))
	for r := range b {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	return rounds
}

// MaxRound returns the highest round number, or 0 for an empty bracket.
func (b Bracket) MaxRound() int {
	max := 0
	for r := range b {
		if r > max {
			max = r
		}
	}
	return max
}

// FindMatch locates a match by id and returns it with its round number.
func (b Bracket) FindMatch(id string) (*Match, int, bool) {
	for r, matches := range b {
		for _, m := range matches {
			if m.ID == id {
				return m, r, true
			}
		}
	}
	return nil, 0, false
}

// MatchAt returns the match with the given 1-based position within a
// round, or nil. Positions are sparse in rounds where empty slots were
// skipped at generation time.
func (b Bracket) MatchAt(round, position int) *Match {
	for _, m := range b[round] {
		if m.Position == position {
			return m
		}
	}
	return nil
}

// AllDecided reports whether every match in the bracket has a winner.
func (b Bracket) AllDecided() bool {
	for _, matches := range b {
		for _, m := range matches {
			if m.Winner == nil {
				return false
			}
		}
	}
	return true
}

// DoubleEliminationBracket composes a winners bracket, a losers bracket
// and the grand final. A loser of winners round r is routed into the
// losers bracket round r.
type DoubleEliminationBracket struct {
	Winners    Bracket `json:"winners"`
	Losers     Bracket `json:"losers"`
	GrandFinal *Match  `json:"grandFinal"`
}

// FindMatch searches all three sections for a match id.
func (d *DoubleEliminationBracket) FindMatch(id string) (*Match, bool) {
	if d == nil {
		return nil, false
	}
	if m, _, ok := d.Winners.FindMatch(id); ok {
		return m, true
	}
	if m, _, ok := d.Losers.FindMatch(id); ok {
		return m, true
	}
	if d.GrandFinal != nil && d.GrandFinal.ID == id {
		return d.GrandFinal, true
	}
	return nil, false
}
