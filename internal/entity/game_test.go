package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Key(t *testing.T) {
	t.Run("Key and ParseBoard round trip", func(t *testing.T) {
		// Given: a mid-game board
		board := Board{
			{MarkX, Empty, MarkO},
			{Empty, MarkX, Empty},
			{Empty, Empty, MarkO},
		}

		// When: the board is turned into a key and parsed back
		key := board.Key()
		parsed, err := ParseBoard(key)

		// Then: the key is compact and the board is restored
		require.NoError(t, err)
		assert.Equal(t, "X.O.X...O", key)
		assert.Equal(t, board, parsed)
	})

	t.Run("ParseBoard rejects bad keys", func(t *testing.T) {
		for _, key := range []string{"", "X.O", "X.O.X...Q", "X.O.X...O."} {
			_, err := ParseBoard(key)
			assert.ErrorIs(t, err, ErrInvalidCell, key)
		}
	})
}

func TestBoard_Count(t *testing.T) {
	board := Board{
		{MarkX, Empty, MarkO},
		{Empty, MarkX, Empty},
		{Empty, Empty, Empty},
	}

	assert.Equal(t, 2, board.Count(MarkX))
	assert.Equal(t, 1, board.Count(MarkO))
	assert.Equal(t, 6, board.Count(Empty))
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Cells are encoded as marks", func(t *testing.T) {
		// Given: a board with both marks
		board := Board{
			{MarkX, Empty, Empty},
			{Empty, MarkO, Empty},
			{Empty, Empty, Empty},
		}

		// When: it is encoded
		data, err := json.Marshal(board)

		// Then: rows of strings are produced
		require.NoError(t, err)
		assert.JSONEq(t, `[["X","",""],["","O",""],["","",""]]`, string(data))
	})

	t.Run("Decodes a well formed board", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[["X","",""],["","O",""],["","","X"]]`), &board)

		require.NoError(t, err)
		assert.Equal(t, Board{
			{MarkX, Empty, Empty},
			{Empty, MarkO, Empty},
			{Empty, Empty, MarkX},
		}, board)
	})

	t.Run("Wrong shape fails to decode", func(t *testing.T) {
		for _, data := range []string{
			`[["X"]]`,
			`[["X","O","","X"],["","",""],["","",""]]`,
			`[["","",""],["","",""],["","",""],["X","X","X"]]`,
			`[["","",""],["","",""]]`,
			`["AAAA",["","",""],["","",""]]`,
			`null`,
		} {
			// Given: a board that is not 3 rows of 3 cells
			board := Board{{MarkO}}

			// When: it is decoded
			err := json.Unmarshal([]byte(data), &board)

			// Then: ErrInvalidShape is returned and the target is untouched
			require.ErrorIs(t, err, ErrInvalidShape, data)
			assert.Equal(t, Board{{MarkO}}, board, data)
		}
	})

	t.Run("Non-string cell fails to decode", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[[1,"",""],["","",""],["","",""]]`), &board)

		require.ErrorIs(t, err, ErrInvalidCell)
	})

	t.Run("Unknown mark fails to decode", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[["Z","",""],["","",""],["","",""]]`), &board)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCell)
	})
}

func TestMove_InBounds(t *testing.T) {
	assert.True(t, Move{Row: 0, Col: 0}.InBounds())
	assert.True(t, Move{Row: 2, Col: 2}.InBounds())
	assert.False(t, Move{Row: -1, Col: 0}.InBounds())
	assert.False(t, Move{Row: 0, Col: 3}.InBounds())
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, MarkX, PlayerX.Mark())
	assert.Equal(t, MarkO, PlayerO.Mark())
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())

	var player Player
	require.NoError(t, player.UnmarshalText([]byte("O")))
	assert.Equal(t, PlayerO, player)
	assert.ErrorIs(t, player.UnmarshalText([]byte("-")), ErrInvalidCell)
}

func TestOutcome(t *testing.T) {
	assert.False(t, InProgress.IsFinished())
	assert.True(t, XWins.IsFinished())
	assert.True(t, OWins.IsFinished())
	assert.True(t, Draw.IsFinished())
	assert.Equal(t, "draw", Draw.String())
}
