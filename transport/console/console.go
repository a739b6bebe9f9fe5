package console

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

const localMatchID = "local"

// Console is the interactive shell: it renders board state with termenv and
// reads human moves from stdin. All rules live in the engine; the console only
// prompts, validates at the boundary by re-prompting, and prints.
type Console struct {
	logger *slog.Logger
	out    *termenv.Output
	in     *bufio.Reader
	rnd    *rand.Rand
}

func New(logger *slog.Logger, rnd *rand.Rand) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		out:    termenv.NewOutput(os.Stdout),
		in:     bufio.NewReader(os.Stdin),
		rnd:    rnd,
	}
}

// RunBots - plays a fully automated match between two bots and reports the
// winner.
func (that *Console) RunBots() error {
	currentMatch := entity.NewMatch(localMatchID, entity.WithBotType)

	markA, markB := entity.RandomMarks(that.rnd)
	playerA := &entity.Player{ID: "bot-1", Name: "Bot1", Mark: markA, Bot: true}
	playerB := &entity.Player{ID: "bot-2", Name: "Bot2", Mark: markB, Bot: true}

	driver := engine.NewDriver(that.logger, currentMatch, that.rnd, playerA, playerB)

	for {
		report, err := driver.Step()
		if err != nil {
			return fmt.Errorf("failed to play turn: %w", err)
		}

		fmt.Printf("%s (%s) played board (%d,%d) cell (%d,%d): %s\n",
			report.Player.Name, that.styledMark(report.Player.Mark),
			report.BoardPos.Row, report.BoardPos.Col,
			report.Cell.Row, report.Cell.Col,
			report.Outcome,
		)

		if report.Finished {
			fmt.Println("-------- Meta Board Results --------")
			that.renderResults(currentMatch.Results)
			fmt.Printf("Winner: %s (%s)\n", report.Winner.Name, that.styledMark(report.Winner.Mark))
			return nil
		}
	}
}

// RunHuman - plays an interactive match: the human picks any instance board
// and a cell each turn, the bot replies through the move selector.
func (that *Console) RunHuman() error {
	currentMatch := entity.NewMatch(localMatchID, entity.HumanType)
	currentMatch.Status = entity.StatusOngoing

	human := &entity.Player{ID: "human", Name: "Human", Mark: entity.MarkX}
	bot := entity.NewBotPlayer(localMatchID, entity.MarkO)

	meta := engine.NewMetaGame(currentMatch, that.rnd)
	selector := engine.NewSelector(that.rnd)

	for {
		fmt.Println("-------- Meta Board --------")
		that.renderMeta(currentMatch)
		fmt.Println("-------- Meta Board Results --------")
		that.renderResults(currentMatch.Results)

		boardPos := that.promptPosition("Select an instance board -> row,col: ")

		board := meta.Board(boardPos)
		fmt.Println("-------- Instance Board selected --------")
		that.renderBoard(board)

		for {
			cellPos := that.promptPosition("Select the cell -> row,col: ")
			if err := board.Place(cellPos, human.Mark); err != nil {
				fmt.Printf("rejected: %v\n", err)
				continue
			}
			break
		}

		fmt.Println("-------- Instance Board updated --------")
		that.renderBoard(board)

		if board.HasWon(human.Mark) {
			meta.Resolve(boardPos, entity.OutcomeWinning, human.Mark)
		}

		if meta.IsMetaWon(human.Mark) {
			fmt.Printf("Winner: %s (%s)\n", human.Name, that.styledMark(human.Mark))
			return nil
		}

		botPos, err := meta.ActiveInstance()
		if err != nil {
			return fmt.Errorf("failed to select active instance: %w", err)
		}

		cell, outcome := selector.FillCell(meta.Board(botPos), bot.Mark)
		meta.Resolve(botPos, outcome, bot.Mark)

		fmt.Printf("%s (%s) played board (%d,%d) cell (%d,%d): %s\n",
			bot.Name, that.styledMark(bot.Mark),
			botPos.Row, botPos.Col, cell.Row, cell.Col, outcome,
		)

		if meta.IsMetaWon(bot.Mark) {
			fmt.Printf("Winner: %s (%s)\n", bot.Name, that.styledMark(bot.Mark))
			return nil
		}
	}
}

// promptPosition - reads a "row,col" pair, re-prompting until it is in range.
func (that *Console) promptPosition(prompt string) entity.Position {
	for {
		fmt.Print(prompt)

		line, err := that.in.ReadString('\n')
		if err != nil {
			fmt.Println()
			continue
		}

		var row, col int
		if _, err = fmt.Sscanf(strings.TrimSpace(line), "%d,%d", &row, &col); err != nil {
			fmt.Println("expected two numbers like 0,2")
			continue
		}

		pos := entity.Position{Row: row, Col: col}
		if !pos.Valid() {
			fmt.Println("row and col must be between 0 and 2")
			continue
		}

		return pos
	}
}

func (that *Console) renderMeta(currentMatch *entity.Match) {
	for bigRow := 0; bigRow < 3; bigRow++ {
		for cellRow := 0; cellRow < 3; cellRow++ {
			segments := make([]string, 0, 3)
			for bigCol := 0; bigCol < 3; bigCol++ {
				board := currentMatch.Boards[bigRow][bigCol]
				cells := make([]string, 0, 3)
				for cellCol := 0; cellCol < 3; cellCol++ {
					cells = append(cells, that.styledMark(board[cellRow][cellCol]))
				}
				segments = append(segments, strings.Join(cells, " "))
			}
			fmt.Println(strings.Join(segments, "   |   "))
		}
		if bigRow < 2 {
			fmt.Println(strings.Repeat("-", 37))
		}
	}
}

func (that *Console) renderResults(results [3][3]entity.Mark) {
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.styledMark(results[row][col]))
		}
		fmt.Println(strings.Join(cells, " "))
	}
}

func (that *Console) renderBoard(board *entity.Board) {
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.styledMark(board[row][col]))
		}
		fmt.Println(strings.Join(cells, " "))
	}
}

func (that *Console) styledMark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.out.String(string(mark)).Foreground(that.out.Color("9")).String()
	case entity.MarkO:
		return that.out.String(string(mark)).Foreground(that.out.Color("12")).String()
	default:
		return "."
	}
}
