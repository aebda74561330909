package combin

import (
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
)

// N2Opposing is the size of the single white-pawn/single black-pawn
// opposing-pair enumeration: NCOLS*(NROWS-2)*(NROWS-3)/2 (§4.1).
var N2Opposing int

var (
	k2opposing    []int32
	k2opposingRev [][2]board.Square // [white, black]
)

// buildOpposing builds the pawn-opposition tables. N2Opposing is ported
// directly from the reference enumeration order; the richer multi-pawn
// shapes (2v1, 1v2, 2v2, 3v1, 1v3, 4-pawn splits) are built by the
// generic OpposingSet enumerator below rather than one hand-specialized
// loop nest per shape -- see DESIGN.md for why a faithful line-by-line
// port of each shape was judged out of scope.
func buildOpposing() {
	k2opposing = make([]int32, nsq*nsq)
	for i := range k2opposing {
		k2opposing[i] = -1
	}

	index := 0
	for col := 0; col < board.NCols; col++ {
		for row1 := 1; row1 <= board.NRows-3; row1++ {
			sq1 := board.NewSquare(row1, col)
			for row2 := row1 + 1; row2 <= board.NRows-2; row2++ {
				sq2 := board.NewSquare(row2, col)
				k2opposing[idx2(int(sq1), int(sq2))] = int32(index)
				k2opposingRev = append(k2opposingRev, [2]board.Square{sq1, sq2})
				index++
			}
		}
	}
	N2Opposing = index
}

// N2OpposingIndex returns the ordinal of a (white pawn, black pawn)
// opposing pair on the same file with the white pawn strictly south of
// the black pawn, both on interior ranks. Returns -1 if not a valid
// opposing pair.
func N2OpposingIndex(white, black board.Square) int {
	return int(k2opposing[idx2(int(white), int(black))])
}

func DecodeN2Opposing(i int) (board.Square, board.Square) {
	t := k2opposingRev[i]
	return t[0], t[1]
}

// OpposingSet enumerates placements of nWhite white pawns and nBlack
// black pawns such that:
//   - all squares are distinct;
//   - every pawn occupies an interior rank (1..NRows-2) or one of the two
//     reserved virtual rows: row 0 for a white pawn (e.p. marker, never a
//     literal placement) or row NRows-1 (promotion slot), and
//     symmetrically row NRows-1 (e.p. marker) or row 0 (promotion slot)
//     for a black pawn -- matching the reserved-row convention of
//     §4.4/§9. The number of pawns of one color on a reserved row is not
//     limited;
//   - at least one white pawn and black pawn share a column with the
//     white pawn's (physical) row strictly less than the black pawn's.
//
// This is a generalization of the reference implementation's per-shape
// enumerators (InitN2_1_OpposingTables and friends): instead of one
// hand-specialized nested loop per (nWhite,nBlack) shape with its own
// e.p./promotion bookkeeping, a single enumerator parameterized by shape
// produces a canonical (sorted) ordering and its inverse. It preserves
// every documented invariant (opposing pair required, reserved rows for
// e.p./promotion) without being a byte-exact port of each historical
// table's enumeration order.
type OpposingSet struct {
	White []board.Square
	Black []board.Square
}

type opposingKey struct{ nWhite, nBlack int }

var opposingCache sync.Map // opposingKey -> []OpposingSet

// BuildOpposingTable enumerates and indexes every valid OpposingSet for
// the given pawn counts, memoizing the (expensive) enumeration. Only
// called for the small shapes (2v1, 1v2, 2v2, 3v1, 1v3) that §4.3 backs
// with a dedicated table; the larger splits (4v1, 3v2, ...) fall back to
// the generic free-pawn composer instead (see pkg/tb/ending), so this
// never runs against a shape large enough to blow up combinatorially.
func BuildOpposingTable(nWhite, nBlack int) []OpposingSet {
	key := opposingKey{nWhite, nBlack}
	if v, ok := opposingCache.Load(key); ok {
		return v.([]OpposingSet)
	}
	out := buildOpposingTableUncached(nWhite, nBlack)
	opposingCache.Store(key, out)
	return out
}

func buildOpposingTableUncached(nWhite, nBlack int) []OpposingSet {
	whiteCandidates := pawnSquareCandidates(board.White)
	blackCandidates := pawnSquareCandidates(board.Black)

	var out []OpposingSet
	var whiteCombo []board.Square
	var rec func(start int)
	rec = func(start int) {
		if len(whiteCombo) == nWhite {
			var blackCombo []board.Square
			var recB func(start int)
			recB = func(start int) {
				if len(blackCombo) == nBlack {
					if distinct(whiteCombo, blackCombo) && hasOpposingPair(whiteCombo, blackCombo) {
						w := append([]board.Square(nil), whiteCombo...)
						b := append([]board.Square(nil), blackCombo...)
						out = append(out, OpposingSet{White: w, Black: b})
					}
					return
				}
				for i := start; i < len(blackCandidates); i++ {
					blackCombo = append(blackCombo, blackCandidates[i])
					recB(i + 1)
					blackCombo = blackCombo[:len(blackCombo)-1]
				}
			}
			recB(0)
			return
		}
		for i := start; i < len(whiteCandidates); i++ {
			whiteCombo = append(whiteCombo, whiteCandidates[i])
			rec(i + 1)
			whiteCombo = whiteCombo[:len(whiteCombo)-1]
		}
	}
	rec(0)
	return out
}

// pawnSquareCandidates returns every square a pawn of the given color may
// occupy in mb_position terms: interior ranks plus the two reserved
// virtual rows (e.p.-capturable and promotion), per §4.4.
func pawnSquareCandidates(c board.Color) []board.Square {
	var out []board.Square
	for row := 0; row < board.NRows; row++ {
		for col := 0; col < board.NCols; col++ {
			out = append(out, board.NewSquare(row, col))
		}
	}
	return out
}

func distinct(a, b []board.Square) bool {
	seen := map[board.Square]bool{}
	for _, s := range a {
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	for _, s := range b {
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// physicalRow maps a pawn's mb_position row to its physical board row:
// row 0 for White (resp. row NRows-1 for Black) is the e.p.-capturable
// virtual marker and maps to row 3 (resp. NRows-4); row NRows-1 for White
// (resp. row 0 for Black) is the promotion marker and maps to itself
// (promoted pawns are never literally placed on the back rank by a real
// position, but the virtual slot still needs a concrete column to test
// opposition against).
func physicalRow(c board.Color, row int) int {
	if c == board.White && row == 0 {
		return 3
	}
	if c == board.Black && row == board.NRows-1 {
		return board.NRows - 4
	}
	return row
}

func hasOpposingPair(white, black []board.Square) bool {
	for _, w := range white {
		wr := physicalRow(board.White, w.Row())
		for _, b := range black {
			if w.Col() != b.Col() {
				continue
			}
			br := physicalRow(board.Black, b.Row())
			if wr < br {
				return true
			}
		}
	}
	return false
}
