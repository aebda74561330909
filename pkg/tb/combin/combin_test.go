package combin_test

import (
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/combin"
	"github.com/stretchr/testify/assert"
)

func TestInitIsIdempotent(t *testing.T) {
	combin.Init()
	combin.Init()
}

func TestCombinatorialCounts(t *testing.T) {
	combin.Init()

	assert.Equal(t, 2016, combin.N2)
	assert.Equal(t, 41664, combin.N3)
	assert.Equal(t, 635376, combin.N4)
	assert.Equal(t, 7624512, combin.N5)
	assert.Equal(t, 74974368, combin.N6)
	assert.Equal(t, 621216192, combin.N7)
}

func TestOffsetsRoundUpToNSquares(t *testing.T) {
	combin.Init()

	assert.Equal(t, 0, combin.N2Offset%64)
	assert.Equal(t, 0, combin.N3Offset%64)
	assert.Equal(t, 0, combin.N4Offset%64)
	assert.Equal(t, 0, combin.N5Offset%64)
	assert.Equal(t, 0, combin.N6Offset%(64*64))
	assert.Equal(t, 0, combin.N7Offset%(64*64))
	assert.GreaterOrEqual(t, combin.N2Offset, combin.N2)
}

func TestN2RoundTrip(t *testing.T) {
	combin.Init()

	a, b := board.Square(5), board.Square(40)
	i := combin.N2Index(a, b)
	assert.Equal(t, i, combin.N2Index(b, a))

	da, db := combin.DecodeN2(i)
	assert.ElementsMatch(t, []board.Square{a, b}, []board.Square{da, db})
}

func TestN3RoundTrip(t *testing.T) {
	combin.Init()

	a, b, c := board.Square(1), board.Square(30), board.Square(63)
	i := combin.N3Index(a, b, c)
	assert.Equal(t, i, combin.N3Index(c, a, b))

	da, db, dc := combin.DecodeN3(i)
	assert.ElementsMatch(t, []board.Square{a, b, c}, []board.Square{da, db, dc})
}

func TestN4RoundTrip(t *testing.T) {
	combin.Init()

	a, b, c, d := board.Square(1), board.Square(20), board.Square(40), board.Square(63)
	i := combin.N4Index(a, b, c, d)

	da, db, dc, dd := combin.DecodeN4(i)
	assert.ElementsMatch(t, []board.Square{a, b, c, d}, []board.Square{da, db, dc, dd})
}

func TestN5N6N7Distinctness(t *testing.T) {
	combin.Init()

	i1 := combin.N5Index(0, 1, 2, 3, 4)
	i2 := combin.N5Index(0, 1, 2, 3, 5)
	assert.NotEqual(t, i1, i2)
	assert.True(t, i1 >= 0 && i1 < combin.N5)
	assert.True(t, i2 >= 0 && i2 < combin.N5)

	j := combin.N6Index(0, 1, 2, 3, 4, 5)
	assert.True(t, j >= 0 && j < combin.N6)

	k := combin.N7Index(0, 1, 2, 3, 4, 5, 6)
	assert.True(t, k >= 0 && k < combin.N7)
}

func TestParityTablesPartitionPairs(t *testing.T) {
	combin.Init()

	assert.Equal(t, combin.N2, combin.N2OddParity+combin.N2EvenParity)

	// Two squares of like color land in the Even table; unlike in Odd.
	white1 := board.NewSquare(0, 0) // A1
	white2 := board.NewSquare(0, 2) // C1, same color as A1
	black := board.NewSquare(0, 1) // B1, opposite color

	assert.GreaterOrEqual(t, combin.N2EvenIndex(white1, white2), 0)
	assert.Equal(t, -1, combin.N2OddIndex(white1, white2))

	assert.GreaterOrEqual(t, combin.N2OddIndex(white1, black), 0)
	assert.Equal(t, -1, combin.N2EvenIndex(white1, black))
}

func TestN2OpposingRequiresInteriorRanksAndColumn(t *testing.T) {
	combin.Init()

	white := board.NewSquare(2, 3)
	black := board.NewSquare(4, 3)
	assert.GreaterOrEqual(t, combin.N2OpposingIndex(white, black), 0)

	notSameCol := board.NewSquare(4, 4)
	assert.Equal(t, -1, combin.N2OpposingIndex(white, notSameCol))

	onBackRank := board.NewSquare(board.NRows-1, 3)
	assert.Equal(t, -1, combin.N2OpposingIndex(white, onBackRank))
}

func TestBuildOpposingTableRequiresAtLeastOneOpposingPair(t *testing.T) {
	combin.Init()

	sets := combin.BuildOpposingTable(2, 1)
	assert.NotEmpty(t, sets)
	for _, s := range sets {
		assert.Len(t, s.White, 2)
		assert.Len(t, s.Black, 1)

		// A pawn on its e.p. marker row stands on row 3 (white) or
		// NRows-4 (black) for the purpose of opposition.
		opposed := false
		for _, w := range s.White {
			wr := w.Row()
			if wr == 0 {
				wr = 3
			}
			for _, b := range s.Black {
				br := b.Row()
				if br == board.NRows-1 {
					br = board.NRows - 4
				}
				if w.Col() == b.Col() && wr < br {
					opposed = true
				}
			}
		}
		assert.True(t, opposed, "%v has no opposing pair", s)
	}
}
