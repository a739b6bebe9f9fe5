package engine

import (
	"log/slog"
	"math/rand"
	"os"
	"testing"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxTestTurns = 10000

func newTestDriver(seed int64) (*Driver, *entity.Match) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	currentMatch := entity.NewMatch("test", entity.WithBotType)
	playerA := &entity.Player{ID: "a", Name: "Bot1", Mark: entity.MarkX, Bot: true}
	playerB := &entity.Player{ID: "b", Name: "Bot2", Mark: entity.MarkO, Bot: true}

	driver := NewDriver(logger, currentMatch, rand.New(rand.NewSource(seed)), playerA, playerB) //nolint: gosec // deterministic test randomness

	return driver, currentMatch
}

func TestDriver_Step(t *testing.T) {
	t.Run("Alternates players strictly regardless of outcome", func(t *testing.T) {
		// Given: a fresh bot-vs-bot game
		driver, _ := newTestDriver(1)
		previous := driver.Current()

		// When: playing several turns
		for i := 0; i < 12; i++ {
			report, err := driver.Step()
			require.NoError(t, err)

			// Then: every turn belongs to the other player than the one before
			require.Equal(t, previous, report.Player)
			if report.Finished {
				return
			}
			require.NotEqual(t, report.Player, driver.Current())
			previous = driver.Current()
		}
	})

	t.Run("Finishes the game once a meta-line is complete", func(t *testing.T) {
		// Given: a game where only the instance at (0,2) is still open and the
		// current player can win it to complete the top meta-row
		driver, currentMatch := newTestDriver(2)
		mark := driver.Current().Mark
		opponent := mark.Opponent()

		currentMatch.Results = [3][3]entity.Mark{
			{mark, mark, entity.MarkEmpty},
			{opponent, opponent, mark},
			{mark, opponent, opponent},
		}
		currentMatch.Boards[0][2] = entity.Board{
			{mark, mark, entity.MarkEmpty},
			{opponent, opponent, entity.MarkEmpty},
			{entity.MarkEmpty, entity.MarkEmpty, entity.MarkEmpty},
		}

		// When: the current player takes its turn
		report, err := driver.Step()
		require.NoError(t, err)

		// Then: the winning move claims the meta-cell and ends the game
		assert.Equal(t, entity.OutcomeWinning, report.Outcome)
		assert.Equal(t, entity.Position{Row: 0, Col: 2}, report.BoardPos)
		assert.True(t, report.Finished)
		assert.Equal(t, mark, report.Winner.Mark)
		assert.Equal(t, entity.StatusFinished, currentMatch.Status)
		assert.Equal(t, mark, currentMatch.Winner)
	})

	t.Run("Stepping a finished game fails", func(t *testing.T) {
		// Given: a game driven to completion
		driver, _ := newTestDriver(3)
		for i := 0; i < maxTestTurns; i++ {
			report, err := driver.Step()
			require.NoError(t, err)
			if report.Finished {
				break
			}
		}
		require.NotNil(t, driver.Winner())

		// When: stepping again
		_, err := driver.Step()

		// Then: the driver refuses
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestDriver_Play(t *testing.T) {
	t.Run("Always terminates with a winner", func(t *testing.T) {
		for seed := int64(0); seed < 10; seed++ {
			// Given: a fresh bot-vs-bot game
			driver, currentMatch := newTestDriver(seed)

			// When: playing to completion
			winner, err := driver.Play()

			// Then: a winner is reported and recorded on the match
			require.NoError(t, err)
			require.NotNil(t, winner)
			require.True(t, winner.Mark.IsPlayer())
			require.Equal(t, entity.StatusFinished, currentMatch.Status)
			require.Equal(t, winner.Mark, currentMatch.Winner)
			require.Equal(t, winner, driver.Winner())
		}
	})
}
