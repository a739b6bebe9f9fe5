package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs human-vs-bot matches: sessions, the human half-turn with
// boundary validation, the bot reply through the move selector, and live-state
// persistence. Finished matches are deleted, not archived.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	matchRepo  matchRepo

	selector *engine.Selector
	rnd      *rand.Rand
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, matchRepo matchRepo, rnd *rand.Rand) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		matchRepo:  matchRepo,

		selector: engine.NewSelector(rnd),
		rnd:      rnd,
	}
}

// GetOrCreatePlayer - returns the player for a session ID, creating a fresh
// one when the ID is empty.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player := &entity.Player{ID: uuid.NewString()}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateMatch - returns the player's current match or starts a fresh
// human-vs-bot one. Marks are dealt at random, the first mover is drawn at
// random, and the bot takes its opening turn immediately when it moves first.
func (that *GameManager) GetOrCreateMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID != "" {
		existingMatch, err := that.matchRepo.GetByID(ctx, player.MatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get match by id: %w", err)
		}

		return existingMatch, nil
	}

	newMatch, err := that.createMatch(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return newMatch, nil
}

// GetMatch - returns a match by ID for read-only consumers.
func (that *GameManager) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	existingMatch, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return existingMatch, nil
}

// MakeTurn - plays the human's move at cellPos on the instance board at
// boardPos, claims the meta-cell on a completed line, and lets the bot reply.
// Invalid positions are rejected before any state changes.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, boardPos, cellPos entity.Position) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	currentMatch, err := that.matchRepo.GetByID(ctx, player.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	if err = currentMatch.ConfirmOngoingState(); err != nil {
		return currentMatch, err
	}

	if currentMatch.Turn != player.Mark {
		return currentMatch, apperror.ErrNotYourTurn
	}

	if !boardPos.Valid() {
		return currentMatch, fmt.Errorf("%w: board row %d col %d", apperror.ErrInvalidPosition, boardPos.Row, boardPos.Col)
	}

	board := currentMatch.Board(boardPos)
	if err = board.Place(cellPos, player.Mark); err != nil {
		return currentMatch, fmt.Errorf("failed to place mark: %w", err)
	}

	meta := engine.NewMetaGame(currentMatch, that.rnd)
	if board.HasWon(player.Mark) {
		meta.Resolve(boardPos, entity.OutcomeWinning, player.Mark)
	}

	if meta.IsMetaWon(player.Mark) {
		return that.finishMatch(ctx, currentMatch, player.Mark)
	}

	if currentMatch.IsWithBot() {
		botMark := player.Mark.Opponent()
		currentMatch.Turn = botMark

		if err = that.playBotTurn(meta, botMark); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}

		if meta.IsMetaWon(botMark) {
			return that.finishMatch(ctx, currentMatch, botMark)
		}
	}

	currentMatch.Turn = player.Mark
	if err = that.updateMatch(ctx, currentMatch); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return currentMatch, nil
}

func (that *GameManager) createMatch(ctx context.Context, player *entity.Player) (*entity.Match, error) {
	matchID := uuid.NewString()

	newMatch := entity.NewMatch(matchID, entity.WithBotType)

	humanMark, botMark := entity.RandomMarks(that.rnd)
	player.MatchID = matchID
	player.Mark = humanMark

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	botPlayer := entity.NewBotPlayer(matchID, botMark)
	if err := that.playerRepo.CreateOrUpdate(ctx, botPlayer); err != nil {
		return nil, fmt.Errorf("failed to update bot player: %w", err)
	}

	newMatch.Players = []*entity.Player{player, botPlayer}
	newMatch.Status = entity.StatusOngoing

	if that.rnd.Intn(2) == 0 {
		newMatch.Turn = humanMark
	} else {
		newMatch.Turn = botMark
	}

	if newMatch.Turn == botMark {
		meta := engine.NewMetaGame(newMatch, that.rnd)
		if err := that.playBotTurn(meta, botMark); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}

		newMatch.Turn = humanMark
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, newMatch); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return newMatch, nil
}

// playBotTurn - one full bot half-turn against the meta state: select the
// active instance, fill a cell, resolve the outcome.
func (that *GameManager) playBotTurn(meta *engine.MetaGame, botMark entity.Mark) error {
	boardPos, err := meta.ActiveInstance()
	if err != nil {
		return fmt.Errorf("failed to select active instance: %w", err)
	}

	_, outcome := that.selector.FillCell(meta.Board(boardPos), botMark)
	meta.Resolve(boardPos, outcome, botMark)

	return nil
}

func (that *GameManager) finishMatch(ctx context.Context, finishedMatch *entity.Match, winner entity.Mark) (*entity.Match, error) {
	log := that.logger.With("method", "finishMatch", "matchID", finishedMatch.ID)

	finishedMatch.Finish(winner)

	if err := that.matchRepo.DeleteByID(ctx, finishedMatch.ID); err != nil {
		log.Error("failed to delete match", "error", err)
	}

	for _, player := range finishedMatch.Players {
		oldMark := player.Mark
		player.MatchID = ""
		player.Mark = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "player", player.ID, "error", err)
		}
		player.Mark = oldMark
	}

	log.Info("match finished", "winner", winner)

	return finishedMatch, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updateMatch(ctx context.Context, currentMatch *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, currentMatch); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	return nil
}
