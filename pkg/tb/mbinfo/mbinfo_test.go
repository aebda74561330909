package mbinfo_test

import (
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/combin"
	"github.com/herohde/egtb/pkg/tb/ending"
	"github.com/herohde/egtb/pkg/tb/mbinfo"
	"github.com/herohde/egtb/pkg/tb/symmetry"
	"github.com/stretchr/testify/assert"
)

func init() {
	combin.Init()
	symmetry.Init()
}

func newBoard(t *testing.T, placements []board.Placement, turn board.Color, epSq board.Square, hasEP bool) *board.Board {
	b, err := board.NewBoard(placements, turn, epSq, hasEP, board.NoCastlingRights, 0, 1)
	assert.NoError(t, err)
	return b
}

func TestGetMBInfoQueenVsRook(t *testing.T) {
	b := newBoard(t, []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
		{Square: board.NewSquare(4, 4), Color: board.White, Piece: board.Queen},
		{Square: board.NewSquare(3, 3), Color: board.Black, Piece: board.Rook},
	}, board.White, 0, false)

	info, err := mbinfo.GetMBInfo(b)
	assert.NoError(t, err)
	assert.False(t, info.PawnsPresent)
	assert.Equal(t, ending.FREE, info.PawnFileType)
	assert.Len(t, info.Parity, 1)
	assert.GreaterOrEqual(t, info.Parity[0].ZIndex, int64(0))
	assert.Empty(t, info.PawnVariants)
}

func TestGetMBInfoRejectsTooManyPieces(t *testing.T) {
	placements := []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
	}
	for i := 0; i < 8; i++ {
		placements = append(placements, board.Placement{Square: board.NewSquare(1, i), Color: board.White, Piece: board.Pawn})
	}
	b := newBoard(t, placements, board.White, 0, false)

	_, err := mbinfo.GetMBInfo(b)
	assert.Error(t, err)
}

func TestGetMBInfoOpposingPawnShape(t *testing.T) {
	b := newBoard(t, []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
		{Square: board.NewSquare(3, 3), Color: board.White, Piece: board.Pawn},
		{Square: board.NewSquare(5, 3), Color: board.Black, Piece: board.Pawn},
	}, board.White, 0, false)

	info, err := mbinfo.GetMBInfo(b)
	assert.NoError(t, err)
	assert.True(t, info.PawnsPresent)
	assert.Equal(t, ending.OP11, info.PawnFileType)
	assert.Len(t, info.PawnVariants, 1)
	assert.Equal(t, ending.OP11, info.PawnVariants[0].Type)
}

func TestGetMBInfoBlockedPawnShape(t *testing.T) {
	b := newBoard(t, []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
		{Square: board.NewSquare(3, 3), Color: board.White, Piece: board.Pawn},
		{Square: board.NewSquare(4, 3), Color: board.Black, Piece: board.Pawn},
	}, board.White, 0, false)

	info, err := mbinfo.GetMBInfo(b)
	assert.NoError(t, err)
	assert.Equal(t, ending.BP11, info.PawnFileType)
	assert.Len(t, info.PawnVariants, 1)
}

func TestGetMBInfoBishopParityVariants(t *testing.T) {
	b := newBoard(t, []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
		{Square: board.NewSquare(2, 2), Color: board.White, Piece: board.Bishop},
		{Square: board.NewSquare(4, 4), Color: board.White, Piece: board.Bishop},
	}, board.White, 0, false)

	info, err := mbinfo.GetMBInfo(b)
	assert.NoError(t, err)
	// base variant plus the fully-constrained white-bishop-parity variant.
	assert.Len(t, info.Parity, 2)
	assert.Equal(t, ending.ParityEven, info.Parity[1].Parity[board.White])
	assert.Equal(t, ending.ParityNone, info.Parity[1].Parity[board.Black])
}

func TestGetMBInfoEnPassantRewrite(t *testing.T) {
	// White pawn just pushed e2-e4; black to move, e.p. square e3.
	epSq, ok := board.ParseSquare('e', '3')
	assert.True(t, ok)

	b := newBoard(t, []board.Placement{
		{Square: board.NewSquare(0, 0), Color: board.White, Piece: board.King},
		{Square: board.NewSquare(7, 7), Color: board.Black, Piece: board.King},
		{Square: board.NewSquare(3, 4), Color: board.White, Piece: board.Pawn}, // e4
		{Square: board.NewSquare(3, 5), Color: board.Black, Piece: board.Pawn}, // f4, adjacent
	}, board.Black, epSq, true)

	info, err := mbinfo.GetMBInfo(b)
	assert.NoError(t, err)
	assert.True(t, info.PawnsPresent)
	assert.Len(t, info.Parity, 1)
}
