package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const BoardSize = 3

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

const (
	markX     = "X"
	markO     = "O"
	emptyMark = ""
)

var (
	ErrInvalidCell  = errors.New("invalid cell value")
	ErrInvalidShape = errors.New("board must have 3 rows of 3 cells")
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return markX
	case MarkO:
		return markO
	default:
		return emptyMark
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case markX:
		*that = MarkX
	case markO:
		*that = MarkO
	case emptyMark:
		*that = Empty
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCell, text)
	}

	return nil
}

// Board is a 3x3 grid. It is an array, so every assignment is an independent copy.
type Board [BoardSize][BoardSize]Cell

// UnmarshalJSON accepts exactly three rows of three cells, each "X", "O" or "".
// Rows are decoded as raw values, so a string row is never taken for base64 bytes.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: got %d rows", ErrInvalidShape, len(rows))
	}

	var board Board
	for r, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidShape, r, len(row))
		}

		for c, raw := range row {
			if err := json.Unmarshal(raw, &board[r][c]); err != nil {
				return fmt.Errorf("%w: cell (%d,%d): %w", ErrInvalidCell, r, c, err)
			}
		}
	}

	*that = board

	return nil
}

// Move identifies a board square by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Count returns the number of cells holding the given value.
func (that Board) Count(cell Cell) int {
	count := 0
	for _, row := range that {
		for _, c := range row {
			if c == cell {
				count++
			}
		}
	}

	return count
}

// Key is a compact, stable representation of the board: nine characters in
// row-major order, '.' for empty squares.
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that {
		for _, c := range row {
			if c == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(c.String())
		}
	}

	return sb.String()
}

// ParseBoard is the inverse of Board.Key.
func ParseBoard(key string) (Board, error) {
	var board Board

	if len(key) != BoardSize*BoardSize {
		return board, fmt.Errorf("%w: board key %q has length %d", ErrInvalidCell, key, len(key))
	}

	for i, ch := range key {
		var cell Cell
		if ch != '.' {
			if err := cell.UnmarshalText([]byte(string(ch))); err != nil {
				return Board{}, err
			}
		}
		board[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}
