package engine

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetaGame(seed int64) (*MetaGame, *entity.Match) {
	currentMatch := entity.NewMatch("test", entity.WithBotType)
	meta := NewMetaGame(currentMatch, rand.New(rand.NewSource(seed))) //nolint: gosec // deterministic test randomness

	return meta, currentMatch
}

func TestMetaGame_Resolve(t *testing.T) {
	t.Run("Winning move claims the meta-cell", func(t *testing.T) {
		// Given: a fresh meta-game
		meta, currentMatch := newTestMetaGame(1)
		pos := entity.Position{Row: 0, Col: 1}

		// When: a winning outcome is resolved for X
		meta.Resolve(pos, entity.OutcomeWinning, entity.MarkX)

		// Then: the meta-result records X
		assert.Equal(t, entity.MarkX, currentMatch.Results[0][1])
	})

	t.Run("Exhausted board is reset and its meta-result cleared", func(t *testing.T) {
		// Given: a full tied board whose meta-result was somehow set
		meta, currentMatch := newTestMetaGame(2)
		pos := entity.Position{Row: 1, Col: 1}
		currentMatch.Boards[1][1] = entity.Board{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.MarkO, entity.MarkX, entity.MarkO},
			{entity.MarkO, entity.MarkX, entity.MarkO},
		}

		// When: the selector reports no move and it is resolved
		_, outcome := newTestSelector(2).FillCell(currentMatch.Board(pos), entity.MarkX)
		meta.Resolve(pos, outcome, entity.MarkX)

		// Then: the board is fresh and the instance undecided again
		assert.Equal(t, entity.OutcomeNoMove, outcome)
		assert.Len(t, currentMatch.Board(pos).CellsRemaining(), 9)
		assert.Equal(t, entity.MarkEmpty, currentMatch.Results[1][1])
	})

	t.Run("Blocking and random outcomes leave meta state alone", func(t *testing.T) {
		// Given: a meta-game with one decided instance
		meta, currentMatch := newTestMetaGame(3)
		currentMatch.Results[0][0] = entity.MarkO

		// When: non-decisive outcomes are resolved elsewhere
		meta.Resolve(entity.Position{Row: 2, Col: 2}, entity.OutcomeBlocking, entity.MarkX)
		meta.Resolve(entity.Position{Row: 2, Col: 1}, entity.OutcomeRandom, entity.MarkX)

		// Then: nothing in the results grid changed
		assert.Equal(t, entity.MarkO, currentMatch.Results[0][0])
		assert.Equal(t, entity.MarkEmpty, currentMatch.Results[2][2])
		assert.Equal(t, entity.MarkEmpty, currentMatch.Results[2][1])
	})
}

func TestMetaGame_ActiveInstance(t *testing.T) {
	t.Run("Skips decided instances while undecided ones remain", func(t *testing.T) {
		// Given: every instance decided except (2,2)
		for seed := int64(0); seed < 25; seed++ {
			meta, currentMatch := newTestMetaGame(seed)
			marks := [3][3]entity.Mark{
				{entity.MarkX, entity.MarkO, entity.MarkX},
				{entity.MarkO, entity.MarkX, entity.MarkO},
				{entity.MarkO, entity.MarkX, entity.MarkEmpty},
			}
			currentMatch.Results = marks

			// When: selecting the active instance
			pos, err := meta.ActiveInstance()

			// Then: the only undecided position is always chosen, with no reset
			require.NoError(t, err)
			require.Equal(t, entity.Position{Row: 2, Col: 2}, pos)
			require.Equal(t, marks, currentMatch.Results)
		}
	})

	t.Run("Resets one random instance only when the grid is saturated", func(t *testing.T) {
		// Given: a fully decided results grid
		meta, currentMatch := newTestMetaGame(7)
		currentMatch.Results = [3][3]entity.Mark{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.MarkO, entity.MarkX, entity.MarkO},
			{entity.MarkO, entity.MarkX, entity.MarkO},
		}

		// When: selecting the active instance
		pos, err := meta.ActiveInstance()

		// Then: the returned position was tie-reset, the rest kept
		require.NoError(t, err)
		assert.Equal(t, entity.MarkEmpty, currentMatch.Results[pos.Row][pos.Col])
		assert.Len(t, currentMatch.Board(pos).CellsRemaining(), 9)

		undecided := 0
		for row := range currentMatch.Results {
			for col := range currentMatch.Results[row] {
				if currentMatch.Results[row][col] == entity.MarkEmpty {
					undecided++
				}
			}
		}
		assert.Equal(t, 1, undecided)
	})

	t.Run("Covers every undecided position over many draws", func(t *testing.T) {
		// Given: a fresh meta-game, all nine instances open
		meta, _ := newTestMetaGame(11)

		// When: drawing the active instance repeatedly
		seen := make(map[entity.Position]int)
		for i := 0; i < 500; i++ {
			pos, err := meta.ActiveInstance()
			require.NoError(t, err)
			seen[pos]++
		}

		// Then: selection is spread across all nine positions
		assert.Len(t, seen, 9)
	})
}

func TestMetaGame_IsMetaWon(t *testing.T) {
	t.Run("Claiming the last cell of a meta-line wins the meta-game", func(t *testing.T) {
		// Given: X holds two meta-cells of the top row
		meta, currentMatch := newTestMetaGame(5)
		currentMatch.Results = [3][3]entity.Mark{
			{entity.MarkX, entity.MarkX, entity.MarkEmpty},
			{entity.MarkO, entity.MarkEmpty, entity.MarkEmpty},
			{entity.MarkEmpty, entity.MarkEmpty, entity.MarkEmpty},
		}
		require.False(t, meta.IsMetaWon(entity.MarkX))

		// When: X wins the instance at (0,2)
		meta.Resolve(entity.Position{Row: 0, Col: 2}, entity.OutcomeWinning, entity.MarkX)

		// Then: the meta-game is won by X and only X
		assert.True(t, meta.IsMetaWon(entity.MarkX))
		assert.False(t, meta.IsMetaWon(entity.MarkO))
	})

	t.Run("Empty mark never wins the meta-game", func(t *testing.T) {
		// Given: a fresh meta-game with an all-empty results grid
		meta, _ := newTestMetaGame(6)

		// When/Then
		assert.False(t, meta.IsMetaWon(entity.MarkEmpty))
	})
}

func TestMetaGame_ResetInstance(t *testing.T) {
	t.Run("Replaces the board wholesale and clears the result", func(t *testing.T) {
		// Given: a half-played, decided instance
		meta, currentMatch := newTestMetaGame(8)
		pos := entity.Position{Row: 0, Col: 0}
		require.NoError(t, currentMatch.Board(pos).Place(entity.Position{Row: 1, Col: 1}, entity.MarkO))
		currentMatch.Results[0][0] = entity.MarkO

		// When: resetting the instance
		meta.ResetInstance(pos)

		// Then: the board is empty again and the instance undecided
		assert.Len(t, currentMatch.Board(pos).CellsRemaining(), 9)
		assert.Equal(t, entity.MarkEmpty, currentMatch.Results[0][0])
	})
}
