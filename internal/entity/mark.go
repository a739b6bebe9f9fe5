package entity

// Mark is a player's symbol on a board cell. MarkEmpty doubles as the
// "instance still undecided" value in meta-results, which is not the same
// thing as an instance board having no moves on it.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// WinLines - the eight winning lines of a 3x3 grid: rows, columns, diagonals.
var WinLines = [8][3]Position{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Opponent - returns the other player's mark, or MarkEmpty for a non-player mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Position addresses a cell of a 3x3 grid, both inside an instance board and
// across the meta-grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) Valid() bool {
	return that.Row >= 0 && that.Row < 3 && that.Col >= 0 && that.Col < 3
}

// HasLine - reports whether any winning line of the grid is entirely mark.
// An all-empty line never counts as a win, so MarkEmpty always loses here.
func HasLine(grid [3][3]Mark, mark Mark) bool {
	if mark == MarkEmpty {
		return false
	}

	for _, line := range WinLines {
		a := grid[line[0].Row][line[0].Col]
		b := grid[line[1].Row][line[1].Col]
		c := grid[line[2].Row][line[2].Col]

		if a == mark && b == mark && c == mark {
			return true
		}
	}

	return false
}
