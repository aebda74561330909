package mbinfo

import (
	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/ending"
)

// buildMBPosition lays out a Board's pieces in mb_position order (§4.4
// steps 1-3): [WK, BK, white pawns, black pawns, then each color's
// Queen/Rook/Bishop/Knight groups in descending material order].
func buildMBPosition(b *board.Board) []board.Square {
	pos := []board.Square{b.KingSquare(board.White), b.KingSquare(board.Black)}
	pos = append(pos, rewriteEPPawns(b, board.White)...)
	pos = append(pos, rewriteEPPawns(b, board.Black)...)

	for _, c := range [2]board.Color{board.White, board.Black} {
		for _, p := range [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
			pos = append(pos, b.Squares(c, p)...)
		}
	}
	return pos
}

// rewriteEPPawns implements §4.4 step 2: the pawn that just double-pushed
// (the one the e.p. square refers to) is rewritten to a reserved virtual
// row -- row 0 for a white pawn, row NRows-1 for black -- rather than its
// literal square, encoding "e.p.-capturable" as a position state instead
// of a real square.
func rewriteEPPawns(b *board.Board, c board.Color) []board.Square {
	squares := b.Squares(c, board.Pawn)
	out := make([]board.Square, len(squares))
	copy(out, squares)

	ep, hasEP := b.EnPassant()
	if !hasEP {
		return out
	}

	var mover board.Color
	var pushedSq board.Square
	switch ep.Row() {
	case 2:
		mover, pushedSq = board.White, board.NewSquare(3, ep.Col())
	case 5:
		mover, pushedSq = board.Black, board.NewSquare(4, ep.Col())
	default:
		return out
	}
	if mover != c {
		return out
	}

	for i, sq := range out {
		if sq != pushedSq {
			continue
		}
		if c == board.White {
			out[i] = board.NewSquare(0, sq.Col())
		} else {
			out[i] = board.NewSquare(board.NRows-1, sq.Col())
		}
	}
	return out
}

// dominantBishopParity classifies a color's bishop group into the
// parity sub-type the ending classifier keys on (§3.2, §4.3): EVEN if a
// 2- or 3-bishop group all stands on the same square color, ODD if it
// does not, NONE for any other count. This mirrors
// pkg/tb/combin's buildK2Parity/buildK3Parity calibration exactly (a
// 2-tuple is "even" iff both squares share a color; a 3-tuple is "even"
// iff all three do), not a heuristic approximation of it.
func dominantBishopParity(b *board.Board, c board.Color) ending.BishopParity {
	squares := b.Squares(c, board.Bishop)
	switch len(squares) {
	case 2:
		if squares[0].Color() == squares[1].Color() {
			return ending.ParityEven
		}
		return ending.ParityOdd
	case 3:
		allSame := squares[0].Color() == squares[1].Color() && squares[1].Color() == squares[2].Color()
		if allSame {
			return ending.ParityEven
		}
		return ending.ParityOdd
	default:
		return ending.ParityNone
	}
}
