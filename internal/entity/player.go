package entity

import "fmt"

// Player is one of the two sides. X always moves first.
type Player uint8

const (
	PlayerX Player = iota
	PlayerO
)

func (that Player) Mark() Cell {
	if that == PlayerO {
		return MarkO
	}
	return MarkX
}

func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) String() string {
	return that.Mark().String()
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case markX:
		*that = PlayerX
	case markO:
		*that = PlayerO
	default:
		return fmt.Errorf("%w: unknown player %q", ErrInvalidCell, text)
	}

	return nil
}
