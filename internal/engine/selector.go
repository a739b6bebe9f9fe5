package engine

import (
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

// scratchMark fills already-probed cells on a scratch board so they are never
// revisited and never mistaken for either player's mark or an empty cell.
const scratchMark entity.Mark = "#"

// Selector implements the layered move policy: winning move, then blocking
// move, then a random one. It is a greedy single-ply lookahead, never minimax.
type Selector struct {
	rnd *rand.Rand
}

func NewSelector(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// FillCell - plays one move for mark on the board and reports which tier of
// the policy produced it. On a full board nothing is mutated and the outcome
// is OutcomeNoMove.
func (that *Selector) FillCell(board *entity.Board, mark entity.Mark) (entity.Position, entity.MoveOutcome) {
	if pos, ok := that.findDecisiveCell(board, mark); ok {
		board[pos.Row][pos.Col] = mark
		return pos, entity.OutcomeWinning
	}

	if pos, ok := that.findDecisiveCell(board, mark.Opponent()); ok {
		board[pos.Row][pos.Col] = mark
		return pos, entity.OutcomeBlocking
	}

	if pos, ok := that.pickRandomCell(board); ok {
		board[pos.Row][pos.Col] = mark
		return pos, entity.OutcomeRandom
	}

	return entity.Position{}, entity.OutcomeNoMove
}

// findDecisiveCell - searches for an empty cell that would complete a line
// for probe. Hypothetical placements happen on a private scratch copy, so the
// real board stays untouched when no such cell exists. Tried cells are
// overwritten with scratchMark until the scratch copy runs out of empty cells.
func (that *Selector) findDecisiveCell(board *entity.Board, probe entity.Mark) (entity.Position, bool) {
	scratch := *board

	for {
		pos, ok := that.pickRandomCell(&scratch)
		if !ok {
			return entity.Position{}, false
		}

		scratch[pos.Row][pos.Col] = probe
		if scratch.HasWon(probe) {
			return pos, true
		}

		scratch[pos.Row][pos.Col] = scratchMark
	}
}

// pickRandomCell - picks uniformly among the board's empty cells.
func (that *Selector) pickRandomCell(board *entity.Board) (entity.Position, bool) {
	cells := board.CellsRemaining()
	if len(cells) == 0 {
		return entity.Position{}, false
	}

	return cells[that.rnd.Intn(len(cells))], true
}
