package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	WithBotType = "bot"
	HumanType   = "human"
)

var ErrUnknownMatchStatus = errors.New("unknown match status")

// MoveOutcome tags the kind of move the selector made. The meta-game consumes
// it to decide whether to claim an instance, reset it, or leave it open.
type MoveOutcome string

const (
	OutcomeWinning  MoveOutcome = "winning"
	OutcomeBlocking MoveOutcome = "blocking"
	OutcomeRandom   MoveOutcome = "random"
	OutcomeNoMove   MoveOutcome = "no_move"
)

// Match is one ultimate tic-tac-toe game: nine instance boards in a 3x3
// meta-grid plus the parallel meta-results grid recording who has won each
// instance. Results[p] is non-empty only after a confirmed line on Boards[p]
// and reverts to MarkEmpty exactly when that board is tie-reset.
type Match struct {
	ID      string      `json:"id"`
	Boards  [3][3]Board `json:"boards"`
	Results [3][3]Mark  `json:"results"`
	Turn    Mark        `json:"player_turn,omitempty"`
	Winner  Mark        `json:"winner,omitempty"`
	Status  string      `json:"status"`
	Players []*Player   `json:"players,omitempty"`
	Type    string      `json:"type,omitempty"`
}

func NewMatch(id, matchType string) *Match {
	return &Match{
		ID:     id,
		Status: StatusWaiting,
		Type:   matchType,
	}
}

// Board - returns the instance board at a meta-position.
func (that *Match) Board(pos Position) *Board {
	return &that.Boards[pos.Row][pos.Col]
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}

func (that *Match) IsWithBot() bool {
	return that.Type == WithBotType
}

// Finish - records the winner and closes the match.
func (that *Match) Finish(winner Mark) {
	that.Winner = winner
	that.Status = StatusFinished
	that.Turn = MarkEmpty
}

// PlayerByMark - returns the player holding mark, or nil.
func (that *Match) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}
	return nil
}

// RandomMarks - deals the two marks in random order.
func RandomMarks(rnd *rand.Rand) (Mark, Mark) {
	if rnd.Intn(2) == 0 {
		return MarkX, MarkO
	}
	return MarkO, MarkX
}
