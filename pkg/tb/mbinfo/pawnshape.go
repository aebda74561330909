package mbinfo

import (
	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/ending"
)

// classifyPawnFileType recognizes the pawn-structure specializations
// (§3.2, §4.4 step 5) by direct column/row comparison of the pawns'
// physical squares. This is a pragmatic simplification of the reference
// enumeration (which distinguishes ONE_COLUMN/ADJACENT/NON_ADJACENT
// sub-shapes for the larger splits, per §4.1): it recognizes a shape
// whenever the pawn counts match a known split AND at least one opposing
// pair exists, without further sub-classifying by column adjacency. A
// position whose pawns match none of these falls back to FREE, which is
// always valid (just less specialized), so this never misclassifies a
// position as unsupported -- only as less specialized than the original
// format would have stored it. See DESIGN.md.
func classifyPawnFileType(b *board.Board, nw, nb int) ending.PawnFileType {
	wp := b.Squares(board.White, board.Pawn)
	bp := b.Squares(board.Black, board.Pawn)

	switch {
	case nw == 1 && nb == 1:
		if blockedPair(wp[0], bp[0]) {
			return ending.BP11
		}
		if opposing(wp[0], bp[0]) {
			return ending.OP11
		}
	case nw == 2 && nb == 1:
		if anyOpposing(wp, bp) {
			return ending.OP21
		}
	case nw == 1 && nb == 2:
		if anyOpposing(wp, bp) {
			return ending.OP12
		}
	case nw == 2 && nb == 2:
		switch countOpposingPairs(wp, bp) {
		case 2:
			return ending.DP22
		case 1:
			return ending.OP22
		}
	case nw == 3 && nb == 1:
		if anyOpposing(wp, bp) {
			return ending.OP31
		}
	case nw == 1 && nb == 3:
		if anyOpposing(wp, bp) {
			return ending.OP13
		}
	case nw == 4 && nb == 1:
		if anyOpposing(wp, bp) {
			return ending.OP41
		}
	case nw == 1 && nb == 4:
		if anyOpposing(wp, bp) {
			return ending.OP14
		}
	case nw == 3 && nb == 2:
		if anyOpposing(wp, bp) {
			return ending.OP32
		}
	case nw == 2 && nb == 3:
		if anyOpposing(wp, bp) {
			return ending.OP23
		}
	case nw == 3 && nb == 3:
		if anyOpposing(wp, bp) {
			return ending.OP33
		}
	case nw == 4 && nb == 2:
		if anyOpposing(wp, bp) {
			return ending.OP42
		}
	case nw == 2 && nb == 4:
		if anyOpposing(wp, bp) {
			return ending.OP24
		}
	}
	return ending.FREE
}

// opposing reports whether a white pawn stands strictly south of a black
// pawn on the same file (§3.2's pawn_file_type definition).
func opposing(w, bk board.Square) bool {
	return w.Col() == bk.Col() && w.Row() < bk.Row()
}

// blockedPair reports whether the black pawn sits directly above the
// white pawn on the same file (§3.2's BP_11).
func blockedPair(w, bk board.Square) bool {
	return w.Col() == bk.Col() && bk.Row() == w.Row()+1
}

func anyOpposing(ws, bs []board.Square) bool {
	for _, w := range ws {
		for _, bk := range bs {
			if opposing(w, bk) {
				return true
			}
		}
	}
	return false
}

// countOpposingPairs distinguishes DP_22 (two disjoint opposing pairs --
// each white pawn opposes a distinct black pawn) from OP_22 (a single
// opposing relationship) for the 2-vs-2 case.
func countOpposingPairs(ws, bs []board.Square) int {
	if len(ws) != 2 || len(bs) != 2 {
		if anyOpposing(ws, bs) {
			return 1
		}
		return 0
	}
	disjoint := (opposing(ws[0], bs[0]) && opposing(ws[1], bs[1])) ||
		(opposing(ws[0], bs[1]) && opposing(ws[1], bs[0]))
	if disjoint {
		return 2
	}
	if anyOpposing(ws, bs) {
		return 1
	}
	return 0
}
