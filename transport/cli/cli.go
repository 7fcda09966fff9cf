package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/game"
)

var ErrInputClosed = errors.New("input closed")

type botService interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

// CLI plays a human against the bot in a terminal.
type CLI struct {
	logger *slog.Logger
	bot    botService

	in  *bufio.Scanner
	out *termenv.Output
}

func New(logger *slog.Logger, bot botService, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		logger: logger.With("component", "cli"),
		bot:    bot,
		in:     bufio.NewScanner(in),
		out:    termenv.NewOutput(out),
	}
}

// Run plays a single game and returns once it is over.
func (that *CLI) Run(ctx context.Context) error {
	human, err := that.askMark()
	if err != nil {
		return err
	}

	match := game.NewGame(human)

	for !match.IsFinished() {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("game interrupted: %w", err)
		}

		if match.IsHumanTurn() {
			that.render(match.Board)
			err = that.humanTurn(match)
		} else {
			err = that.botTurn(ctx, match)
		}

		if err != nil {
			return err
		}
	}

	that.render(match.Board)
	that.announce(match)

	that.logger.Info("game finished", "outcome", match.Outcome.String(), "moves", len(match.Moves))

	return nil
}

func (that *CLI) askMark() (entity.Player, error) {
	for {
		that.printf("Play as X or O? [X/O]: ")

		line, err := that.readLine()
		if err != nil {
			return entity.PlayerX, err
		}

		var player entity.Player
		if err = player.UnmarshalText([]byte(strings.ToUpper(line))); err == nil {
			return player, nil
		}

		that.printf("Please type X or O.\n")
	}
}

func (that *CLI) humanTurn(match *game.Game) error {
	for {
		that.printf("Your move (row col): ")

		line, err := that.readLine()
		if err != nil {
			return err
		}

		move, ok := parseMove(line)
		if !ok {
			that.printf("Enter two numbers between 0 and 2, e.g. \"1 1\".\n")
			continue
		}

		err = match.MakeMove(match.Human, move)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperror.ErrInvalidMove):
			that.printf("%s\n", that.out.String(err.Error()).Foreground(that.out.Color("1")))
		default:
			return fmt.Errorf("failed to make turn: %w", err)
		}
	}
}

// parseMove accepts exactly two whitespace separated integers.
func parseMove(line string) (entity.Move, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Move{}, false
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, false
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, false
	}

	return entity.Move{Row: row, Col: col}, true
}

func (that *CLI) botTurn(ctx context.Context, match *game.Game) error {
	solution, err := that.bot.BestMove(ctx, match.Board)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = match.MakeMove(match.Turn(), solution.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.printf("Bot plays %d %d\n", solution.Move.Row, solution.Move.Col)

	return nil
}

func (that *CLI) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *CLI) render(board entity.Board) {
	that.printf("\n    0   1   2\n")
	for r, row := range board {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, that.cell(cell))
		}
		that.printf("%d   %s\n", r, strings.Join(cells, " | "))
		if r < entity.BoardSize-1 {
			that.printf("   ---+---+---\n")
		}
	}
	that.printf("\n")
}

func (that *CLI) cell(cell entity.Cell) string {
	switch cell {
	case entity.MarkX:
		return that.out.String("X").Foreground(that.out.Color("4")).Bold().String()
	case entity.MarkO:
		return that.out.String("O").Foreground(that.out.Color("3")).Bold().String()
	default:
		return " "
	}
}

func (that *CLI) announce(match *game.Game) {
	var text string

	switch match.Outcome {
	case entity.Draw:
		text = "Draw."
	case entity.XWins, entity.OWins:
		winner := entity.PlayerX
		if match.Outcome == entity.OWins {
			winner = entity.PlayerO
		}

		if winner == match.Human {
			text = "You win!"
		} else {
			text = "Bot wins."
		}
	}

	that.printf("%s\n", that.out.String(text).Bold())
}

func (that *CLI) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
