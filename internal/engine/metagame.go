package engine

import (
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

// MetaGame resolves instance outcomes into meta-cell claims, applies the
// tie-reset rule and picks the active instance board for the next move.
type MetaGame struct {
	match *entity.Match
	rnd   *rand.Rand
}

func NewMetaGame(match *entity.Match, rnd *rand.Rand) *MetaGame {
	return &MetaGame{
		match: match,
		rnd:   rnd,
	}
}

// ActiveInstance - selects a uniformly random undecided meta-position.
// A decided position is refreshed only at the moment the whole results grid
// is saturated: then one random position is tie-reset and handed out.
// Implemented as one pass over shuffled candidates, which draws from the same
// distribution as retrying random picks until an undecided one comes up.
func (that *MetaGame) ActiveInstance() (entity.Position, error) {
	candidates := metaPositions()
	that.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if that.saturated() {
		pos := candidates[0]
		that.ResetInstance(pos)
		return pos, nil
	}

	for _, pos := range candidates {
		if that.match.Results[pos.Row][pos.Col] == entity.MarkEmpty {
			return pos, nil
		}
	}

	// unreachable: a non-saturated grid has at least one empty results cell
	return entity.Position{}, apperror.ErrNoActiveBoards
}

// Resolve - folds a move outcome into the meta state. A winning move claims
// the meta-cell; an exhausted board is tie-reset; blocking and random moves
// leave the instance open.
func (that *MetaGame) Resolve(pos entity.Position, outcome entity.MoveOutcome, mark entity.Mark) {
	switch outcome {
	case entity.OutcomeWinning:
		that.match.Results[pos.Row][pos.Col] = mark
	case entity.OutcomeNoMove:
		that.ResetInstance(pos)
	case entity.OutcomeBlocking, entity.OutcomeRandom:
	}
}

// ResetInstance - discards the board at pos wholesale, replacing it with a
// fresh empty one, and clears its meta-result.
func (that *MetaGame) ResetInstance(pos entity.Position) {
	that.match.Boards[pos.Row][pos.Col] = entity.Board{}
	that.match.Results[pos.Row][pos.Col] = entity.MarkEmpty
}

func (that *MetaGame) IsMetaWon(mark entity.Mark) bool {
	return entity.HasLine(that.match.Results, mark)
}

// Board - returns the instance board at a meta-position.
func (that *MetaGame) Board(pos entity.Position) *entity.Board {
	return that.match.Board(pos)
}

// Results - returns a copy of the meta-results grid for presentation.
func (that *MetaGame) Results() [3][3]entity.Mark {
	return that.match.Results
}

func (that *MetaGame) saturated() bool {
	for row := range that.match.Results {
		for col := range that.match.Results[row] {
			if that.match.Results[row][col] == entity.MarkEmpty {
				return false
			}
		}
	}

	return true
}

func metaPositions() []entity.Position {
	positions := make([]entity.Position, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			positions = append(positions, entity.Position{Row: row, Col: col})
		}
	}

	return positions
}
