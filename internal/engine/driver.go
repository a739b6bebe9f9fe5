package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

// TurnReport describes one completed bot turn.
type TurnReport struct {
	Player   *entity.Player
	BoardPos entity.Position
	Cell     entity.Position
	Outcome  entity.MoveOutcome
	Finished bool
	Winner   *entity.Player
}

// Driver alternates bot turns against a MetaGame until one mark owns three
// meta-cells in a line. The first mover is drawn at random; after that turn
// order alternates strictly no matter where or how a player moved.
type Driver struct {
	logger   *slog.Logger
	meta     *MetaGame
	selector *Selector
	match    *entity.Match
	players  [2]*entity.Player
	current  int
	winner   *entity.Player
}

func NewDriver(logger *slog.Logger, match *entity.Match, rnd *rand.Rand, playerA, playerB *entity.Player) *Driver {
	match.Status = entity.StatusOngoing

	driver := &Driver{
		logger:   logger.With("component", "driver"),
		meta:     NewMetaGame(match, rnd),
		selector: NewSelector(rnd),
		match:    match,
		players:  [2]*entity.Player{playerA, playerB},
		current:  rnd.Intn(2),
	}

	match.Turn = driver.players[driver.current].Mark

	return driver
}

// Step - plays one bot turn: pick the active instance, fill a cell, resolve
// the outcome against the meta state and test both marks for a meta win.
func (that *Driver) Step() (*TurnReport, error) {
	if that.winner != nil {
		return nil, apperror.ErrGameFinished
	}

	player := that.players[that.current]

	boardPos, err := that.meta.ActiveInstance()
	if err != nil {
		return nil, fmt.Errorf("failed to select active instance: %w", err)
	}

	cell, outcome := that.selector.FillCell(that.meta.Board(boardPos), player.Mark)
	that.meta.Resolve(boardPos, outcome, player.Mark)

	that.logger.Debug("turn played",
		"player", player.Name,
		"board", boardPos,
		"cell", cell,
		"outcome", outcome,
	)

	report := &TurnReport{
		Player:   player,
		BoardPos: boardPos,
		Cell:     cell,
		Outcome:  outcome,
	}

	for _, candidate := range that.players {
		if that.meta.IsMetaWon(candidate.Mark) {
			that.winner = candidate
			that.match.Finish(candidate.Mark)
			report.Finished = true
			report.Winner = candidate

			return report, nil
		}
	}

	that.current = 1 - that.current
	that.match.Turn = that.players[that.current].Mark

	return report, nil
}

// Play - drives turns to termination and returns the winning player.
func (that *Driver) Play() (*entity.Player, error) {
	for {
		report, err := that.Step()
		if err != nil {
			return nil, err
		}

		if report.Finished {
			return report.Winner, nil
		}
	}
}

// Current - returns the player whose turn it is.
func (that *Driver) Current() *entity.Player {
	return that.players[that.current]
}

// Winner - returns the winning player, or nil while the game is in progress.
func (that *Driver) Winner() *entity.Player {
	return that.winner
}
