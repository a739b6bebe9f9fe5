package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

// Board is one 3x3 tic-tac-toe grid. The zero value is an empty board; the
// tie-reset rule replaces a board wholesale with a fresh zero value instead of
// clearing cells one by one.
type Board [3][3]Mark

// CellsRemaining - returns every position still holding MarkEmpty, row-major.
func (that *Board) CellsRemaining() []Position {
	cells := make([]Position, 0, 9)
	for row := range that {
		for col := range that[row] {
			if that[row][col] == MarkEmpty {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	return len(that.CellsRemaining()) == 0
}

// Place - writes mark into a single empty cell. Out-of-range or occupied
// targets are rejected without touching the board.
func (that *Board) Place(pos Position, mark Mark) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidPosition, pos.Row, pos.Col)
	}

	if that[pos.Row][pos.Col] != MarkEmpty {
		return apperror.ErrCellOccupied
	}

	that[pos.Row][pos.Col] = mark

	return nil
}

// HasWon - reports whether mark holds a full row, column or diagonal.
// Always false for MarkEmpty.
func (that *Board) HasWon(mark Mark) bool {
	return HasLine([3][3]Mark(*that), mark)
}
