package tbfen_test

import (
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/tbfen"
	"github.com/stretchr/testify/assert"
)

func TestDecodePlacement(t *testing.T) {
	b, err := tbfen.Decode("8/2b5/8/8/3P4/pPP5/P7/2k1K3 w - - 0 1")
	assert.NoError(t, err)

	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, 8, b.TotalPieces())
	assert.Equal(t, board.NoCastlingRights, b.Castling())

	c, p, ok := b.Square(board.NewSquare(6, 2)) // c7
	assert.True(t, ok)
	assert.Equal(t, board.Black, c)
	assert.Equal(t, board.Bishop, p)

	c, p, ok = b.Square(board.NewSquare(3, 3)) // d4
	assert.True(t, ok)
	assert.Equal(t, board.White, c)
	assert.Equal(t, board.Pawn, p)

	assert.Equal(t, board.NewSquare(0, 4), b.KingSquare(board.White)) // e1
	assert.Equal(t, board.NewSquare(0, 2), b.KingSquare(board.Black)) // c1

	assert.Equal(t, 4, b.Count(board.White, board.Pawn))
	assert.Equal(t, 1, b.Count(board.Black, board.Pawn))
}

func TestDecodeSideAndCounters(t *testing.T) {
	b, err := tbfen.Decode("8/p1b5/8/2PP4/PP6/8/8/1k2K3 b - - 3 42")
	assert.NoError(t, err)
	assert.Equal(t, board.Black, b.Turn())
	assert.Equal(t, 3, b.HalfMoveClock())
	assert.Equal(t, 42, b.FullMoveNumber())
}

func TestDecodeEnPassant(t *testing.T) {
	// White just pushed d2-d4 with a black pawn on c4.
	b, err := tbfen.Decode("8/8/8/8/2pP4/8/8/1k2K3 b - d3 0 1")
	assert.NoError(t, err)
	ep, ok := b.EnPassant()
	assert.True(t, ok)
	assert.Equal(t, board.NewSquare(2, 3), ep)
}

func TestDecodeCastling(t *testing.T) {
	b, err := tbfen.Decode("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.NoError(t, err)
	assert.True(t, b.Castling().IsAllowed(board.WhiteKingSideCastle))
	assert.False(t, b.Castling().IsAllowed(board.BlackQueenSideCastle))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8/8/8/8/8 w - - 0 1",              // no kings
		"9/8/8/8/8/8/8/4K2k w - - 0 1",           // bad rank length
		"8/8/8/8/8/8/8/4K2k x - - 0 1",           // bad color
		"8/8/8/8/8/8/8/4K2k w - - x 1",           // bad halfmove
		"8/8/8/8/8/8/8/4K2k w - z9 0 1",          // bad en passant
		"4k3/8/8/8/8/8/8/4K3 w KQkq - 0",         // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w - - 0 1", // short board
	} {
		_, err := tbfen.Decode(fen)
		assert.Error(t, err, "fen: %v", fen)
	}
}
