package board_test

import (
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/stretchr/testify/assert"
)

func TestSquare(t *testing.T) {
	assert.Equal(t, board.Square(0), board.NewSquare(0, 0))
	assert.Equal(t, board.Square(8), board.NewSquare(1, 0))
	assert.Equal(t, 0, board.NewSquare(3, 0).Row()*0+board.NewSquare(3, 0).Col())

	sq := board.NewSquare(3, 4)
	assert.Equal(t, 3, sq.Row())
	assert.Equal(t, 4, sq.Col())
	assert.Equal(t, "E4", sq.String())

	parsed, ok := board.ParseSquare('e', '4')
	assert.True(t, ok)
	assert.Equal(t, sq, parsed)

	_, ok = board.ParseSquare('z', '4')
	assert.False(t, ok)
}

func TestSquareColor(t *testing.T) {
	// H1 is the calibration square (color 0, "white" square in the
	// bishop-parity sense).
	h1, _ := board.ParseSquare('h', '1')
	a1, _ := board.ParseSquare('a', '1')
	assert.Equal(t, 0, h1.Color())
	assert.Equal(t, 1, a1.Color())
}

func kings(wk, bk board.Square) []board.Placement {
	return []board.Placement{
		{Square: wk, Color: board.White, Piece: board.King},
		{Square: bk, Color: board.Black, Piece: board.King},
	}
}

func TestNewBoardRejectsAdjacentKings(t *testing.T) {
	wk, _ := board.ParseSquare('e', '1')
	bk, _ := board.ParseSquare('e', '2')

	_, err := board.NewBoard(kings(wk, bk), board.White, 0, false, board.NoCastlingRights, 0, 1)
	assert.Error(t, err)
}

func TestNewBoardRejectsMissingKing(t *testing.T) {
	wk, _ := board.ParseSquare('e', '1')

	_, err := board.NewBoard([]board.Placement{{Square: wk, Color: board.White, Piece: board.King}}, board.White, 0, false, board.NoCastlingRights, 0, 1)
	assert.Error(t, err)
}

func TestBoardDerivedCaches(t *testing.T) {
	wk, _ := board.ParseSquare('e', '1')
	bk, _ := board.ParseSquare('e', '8')
	wp, _ := board.ParseSquare('d', '4')

	placements := append(kings(wk, bk), board.Placement{Square: wp, Color: board.White, Piece: board.Pawn})
	b, err := board.NewBoard(placements, board.White, 0, false, board.NoCastlingRights, 0, 1)
	assert.NoError(t, err)

	assert.Equal(t, 3, b.TotalPieces())
	assert.Equal(t, 1, b.Count(board.White, board.Pawn))
	assert.Equal(t, wk, b.KingSquare(board.White))
	assert.Equal(t, 1, b.Strength(board.White))
	assert.Equal(t, 0, b.Strength(board.Black))
}

func TestBoardFlip(t *testing.T) {
	wk, _ := board.ParseSquare('e', '1')
	bk, _ := board.ParseSquare('e', '8')

	b, err := board.NewBoard(kings(wk, bk), board.White, 0, false, board.NoCastlingRights, 0, 1)
	assert.NoError(t, err)

	f := b.Flip()
	assert.Equal(t, board.Black, f.Turn())
	c, p, ok := f.Square(board.NewSquare(board.NRows-1-wk.Row(), wk.Col()))
	assert.True(t, ok)
	assert.Equal(t, board.Black, c)
	assert.Equal(t, board.King, p)
}

func TestEnPassantValidation(t *testing.T) {
	wk, _ := board.ParseSquare('e', '1')
	bk, _ := board.ParseSquare('e', '8')
	wp, _ := board.ParseSquare('d', '4') // just pushed d2-d4
	bp, _ := board.ParseSquare('c', '4') // adjacent black pawn
	ep, _ := board.ParseSquare('d', '3')

	placements := append(kings(wk, bk),
		board.Placement{Square: wp, Color: board.White, Piece: board.Pawn},
		board.Placement{Square: bp, Color: board.Black, Piece: board.Pawn})

	_, err := board.NewBoard(placements, board.Black, ep, true, board.NoCastlingRights, 0, 1)
	assert.NoError(t, err)

	badEP, _ := board.ParseSquare('d', '6')
	_, err = board.NewBoard(placements, board.Black, badEP, true, board.NoCastlingRights, 0, 1)
	assert.Error(t, err)
}
