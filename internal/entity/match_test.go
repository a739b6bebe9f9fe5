package entity

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when match status is finished", func(t *testing.T) {
		// Given: a match with StatusFinished
		currentMatch := &Match{Status: StatusFinished}

		// When/Then
		assert.True(t, currentMatch.IsFinished())
	})

	t.Run("IsOngoing returns true when match status is ongoing", func(t *testing.T) {
		// Given: a match with StatusOngoing
		currentMatch := &Match{Status: StatusOngoing}

		// When/Then
		assert.True(t, currentMatch.IsOngoing())
	})

	t.Run("IsWaiting returns true when match status is waiting", func(t *testing.T) {
		// Given: a match with StatusWaiting
		currentMatch := &Match{Status: StatusWaiting}

		// When/Then
		assert.True(t, currentMatch.IsWaiting())
	})
}

func TestMatch_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when match is ongoing", func(t *testing.T) {
		currentMatch := &Match{Status: StatusOngoing}

		assert.NoError(t, currentMatch.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when match is waiting", func(t *testing.T) {
		currentMatch := &Match{Status: StatusWaiting}

		assert.ErrorIs(t, currentMatch.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when match is finished", func(t *testing.T) {
		currentMatch := &Match{Status: StatusFinished}

		assert.ErrorIs(t, currentMatch.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown match status", func(t *testing.T) {
		currentMatch := &Match{Status: "unknown"}

		err := currentMatch.ConfirmOngoingState()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownMatchStatus)
	})
}

func TestNewMatch(t *testing.T) {
	t.Run("Starts with nine empty boards and an undecided results grid", func(t *testing.T) {
		// Given/When: a fresh match
		currentMatch := NewMatch("123", WithBotType)

		// Then: every instance board is empty and every meta-result undecided
		for row := range currentMatch.Boards {
			for col := range currentMatch.Boards[row] {
				board := currentMatch.Board(Position{Row: row, Col: col})
				assert.Len(t, board.CellsRemaining(), 9)
				assert.Equal(t, MarkEmpty, currentMatch.Results[row][col])
			}
		}

		assert.Equal(t, StatusWaiting, currentMatch.Status)
		assert.True(t, currentMatch.IsWithBot())
	})
}

func TestMatch_Finish(t *testing.T) {
	t.Run("Records the winner and closes the match", func(t *testing.T) {
		// Given: an ongoing match
		currentMatch := &Match{Status: StatusOngoing, Turn: MarkO}

		// When: X wins the meta-game
		currentMatch.Finish(MarkX)

		// Then: the match is finished, the winner recorded, no turn pending
		assert.Equal(t, StatusFinished, currentMatch.Status)
		assert.Equal(t, MarkX, currentMatch.Winner)
		assert.Equal(t, MarkEmpty, currentMatch.Turn)
	})
}

func TestMatch_PlayerByMark(t *testing.T) {
	t.Run("Finds the player holding a mark", func(t *testing.T) {
		// Given: a match with two players
		playerX := &Player{ID: "a", Mark: MarkX}
		playerO := &Player{ID: "b", Mark: MarkO}
		currentMatch := &Match{Players: []*Player{playerX, playerO}}

		// When/Then
		assert.Equal(t, playerX, currentMatch.PlayerByMark(MarkX))
		assert.Equal(t, playerO, currentMatch.PlayerByMark(MarkO))
		assert.Nil(t, currentMatch.PlayerByMark(MarkEmpty))
	})
}

func TestRandomMarks(t *testing.T) {
	t.Run("Always deals both marks", func(t *testing.T) {
		// Given: a deterministic random source
		rnd := rand.New(rand.NewSource(1)) //nolint: gosec // deterministic test randomness

		// When: dealing marks many times
		for i := 0; i < 20; i++ {
			first, second := RandomMarks(rnd)

			// Then: the marks are always complementary
			assert.True(t, first.IsPlayer())
			assert.Equal(t, first.Opponent(), second)
		}
	})
}
