package ending

import (
	"sort"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/combin"
)

// legalBlockedPawnSquareCount/Index/At enumerate the white-pawn squares a
// BP_11 blocked pair can stand on: any interior square whose immediately
// northern square is also interior (since the black pawn sits directly
// above it), i.e. rows 1..NRows-3.
func legalBlockedPawnSquareCount() int {
	return board.NCols * (board.NRows - 3)
}

func legalBlockedPawnSquareIndex(sq board.Square) int {
	return (sq.Row()-1)*board.NCols + sq.Col()
}

func legalBlockedPawnSquareAt(i int) board.Square {
	row := i/board.NCols + 1
	col := i % board.NCols
	return board.NewSquare(row, col)
}

// pawnZoneSize/pawnIndex/pawnDecode compose the pawn-placement half of a
// Row (§4.1, §4.3). FREE (and any pawn-file type whose Effective() is
// FREE, i.e. the seven-piece "larger" splits) treats the two colors' pawn
// squares as independent unordered tuples; the small opposing shapes route
// through the dedicated combin tables/enumerators instead.
func pawnZoneSize(pft PawnFileType, nWhite, nBlack int) int64 {
	switch pft {
	case BP11:
		return int64(legalBlockedPawnSquareCount())
	case OP11:
		return int64(combin.N2Opposing)
	case OP21, OP12, OP22, DP22, OP31, OP13:
		return int64(len(combin.BuildOpposingTable(nWhite, nBlack)))
	default:
		return tupleSize(nWhite) * tupleSize(nBlack)
	}
}

func pawnIndex(pft PawnFileType, white, black []board.Square) int64 {
	switch pft {
	case BP11:
		return int64(legalBlockedPawnSquareIndex(white[0]))
	case OP11:
		idx := combin.N2OpposingIndex(white[0], black[0])
		return int64(idx)
	case OP21, OP12, OP22, DP22, OP31, OP13:
		return findOpposingSet(white, black)
	default:
		return tupleIndex(white)*tupleSize(len(black)) + tupleIndex(black)
	}
}

func pawnDecode(pft PawnFileType, zindex int64, nWhite, nBlack int) (white, black []board.Square) {
	switch pft {
	case BP11:
		w := legalBlockedPawnSquareAt(int(zindex))
		return []board.Square{w}, []board.Square{board.NewSquare(w.Row()+1, w.Col())}
	case OP11:
		w, b := combin.DecodeN2Opposing(int(zindex))
		return []board.Square{w}, []board.Square{b}
	case OP21, OP12, OP22, DP22, OP31, OP13:
		list := combin.BuildOpposingTable(nWhite, nBlack)
		s := list[zindex]
		return s.White, s.Black
	default:
		bsize := tupleSize(nBlack)
		wIdx := zindex / bsize
		bIdx := zindex % bsize
		return tupleDecode(nWhite, wIdx), tupleDecode(nBlack, bIdx)
	}
}

func findOpposingSet(white, black []board.Square) int64 {
	list := combin.BuildOpposingTable(len(white), len(black))
	wantW, wantB := sortedCopy(white), sortedCopy(black)
	for i, s := range list {
		if equalSquares(sortedCopy(s.White), wantW) && equalSquares(sortedCopy(s.Black), wantB) {
			return int64(i)
		}
	}
	return AllOnes
}

func sortedCopy(sq []board.Square) []board.Square {
	out := append([]board.Square(nil), sq...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalSquares(a, b []board.Square) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
