package ending_test

import (
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/combin"
	"github.com/herohde/egtb/pkg/tb/ending"
	"github.com/herohde/egtb/pkg/tb/symmetry"
	"github.com/stretchr/testify/assert"
)

func init() {
	combin.Init()
	symmetry.Init()
}

func countsWith(pawn, knight, bishop, rook, queen int) [board.NumPieces]int {
	var c [board.NumPieces]int
	c[board.Pawn] = pawn
	c[board.Knight] = knight
	c[board.Bishop] = bishop
	c[board.Rook] = rook
	c[board.Queen] = queen
	return c
}

func TestGetEndingTypeRejectsMismatchedPawnCount(t *testing.T) {
	white := countsWith(1, 0, 0, 0, 0)
	black := countsWith(1, 0, 0, 0, 0)
	_, err := ending.GetEndingType(white, black, ending.OP21, [2]ending.BishopParity{})
	assert.Error(t, err)
}

func TestRowEncodeDecodeRoundTripFreePawns(t *testing.T) {
	white := countsWith(1, 0, 0, 0, 1) // 1 pawn, 1 queen
	black := countsWith(1, 0, 0, 0, 0) // 1 pawn
	row, err := ending.GetEndingType(white, black, ending.FREE, [2]ending.BishopParity{})
	assert.NoError(t, err)

	wp := board.NewSquare(3, 3)
	bp := board.NewSquare(4, 5)
	wq := board.NewSquare(6, 6)
	pos := []board.Square{0, 0, wp, bp, wq}

	zindex := row.Encode(pos)
	assert.GreaterOrEqual(t, zindex, int64(0))
	assert.Less(t, zindex, row.Size)

	decoded := row.Decode(zindex)
	assert.ElementsMatch(t, []board.Square{wp}, []board.Square{decoded[0]})
	assert.ElementsMatch(t, []board.Square{bp}, []board.Square{decoded[1]})
	assert.Equal(t, wq, decoded[2])
}

func TestRowEncodeDecodeRoundTripOpposingPawns(t *testing.T) {
	white := countsWith(1, 0, 0, 0, 0)
	black := countsWith(1, 0, 0, 0, 0)
	row, err := ending.GetEndingType(white, black, ending.OP11, [2]ending.BishopParity{})
	assert.NoError(t, err)

	wp := board.NewSquare(2, 4)
	bp := board.NewSquare(5, 4)
	pos := []board.Square{0, 0, wp, bp}

	zindex := row.Encode(pos)
	assert.GreaterOrEqual(t, zindex, int64(0))

	decoded := row.Decode(zindex)
	assert.Equal(t, wp, decoded[0])
	assert.Equal(t, bp, decoded[1])
}

func TestBishopParityConstrainsEncode(t *testing.T) {
	white := countsWith(0, 0, 2, 0, 0)
	black := countsWith(0, 0, 0, 0, 0)
	parity := [2]ending.BishopParity{ending.ParityEven, ending.ParityNone}
	row, err := ending.GetEndingType(white, black, ending.FREE, parity)
	assert.NoError(t, err)

	// Two same-colored bishops (both "even" parity squares).
	a := board.NewSquare(0, 0)
	b := board.NewSquare(0, 2)
	assert.Equal(t, a.Color(), b.Color())
	pos := []board.Square{0, 0, a, b}
	assert.GreaterOrEqual(t, row.Encode(pos), int64(0))

	// Mixed-colored bishops don't fit the EVEN-parity row.
	c := board.NewSquare(0, 1)
	assert.NotEqual(t, a.Color(), c.Color())
	posMixed := []board.Square{0, 0, a, c}
	assert.Equal(t, ending.AllOnes, row.Encode(posMixed))
}

func TestEndingTagDistinguishesPawnFileTypes(t *testing.T) {
	white := countsWith(2, 0, 0, 0, 0)
	black := countsWith(1, 0, 0, 0, 0)
	tagOP21 := ending.EndingTag(white, black, ending.OP21)
	tagFree := ending.EndingTag(white, black, ending.FREE)
	assert.NotEqual(t, tagOP21, tagFree)
}

func TestGetMBIndexConsistentAcrossSymmetry(t *testing.T) {
	white := countsWith(0, 0, 0, 0, 1) // queen only
	black := countsWith(0, 0, 0, 0, 0)
	row, err := ending.GetEndingType(white, black, ending.FREE, [2]ending.BishopParity{})
	assert.NoError(t, err)

	wk := board.NewSquare(0, 0)
	bk := board.NewSquare(5, 5)
	wq := board.NewSquare(2, 3)
	pos := []board.Square{wk, bk, wq}

	kk1, z1, ok := ending.GetMBIndex(row, pos, false)
	assert.True(t, ok)

	for sym := symmetry.Transform(0); sym < symmetry.NumTransforms; sym++ {
		transformed := []board.Square{
			symmetry.Apply(sym, wk),
			symmetry.Apply(sym, bk),
			symmetry.Apply(sym, wq),
		}
		kk2, z2, ok := ending.GetMBIndex(row, transformed, false)
		assert.True(t, ok)
		assert.Equal(t, kk1, kk2)
		assert.Equal(t, z1, z2)
	}
}
