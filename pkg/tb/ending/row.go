package ending

import "github.com/herohde/egtb/pkg/tb/board"

// AllOnes is the sentinel Encode returns when a position cannot be
// represented by this row (§3.3, §4.5).
const AllOnes int64 = -1

// Row binds a material shape -- ending tag, pawn-file type, bishop-parity
// sub_type -- to its (encode, decode) index functions (§3.3). Positions
// passed to Encode/Decode are in mb_position order: [WK, BK, white pawns,
// black pawns, then each color's Queen/Rook/Bishop/Knight groups in
// descending material order] (§4.4).
type Row struct {
	Tag          int
	PawnFileType PawnFileType
	SubType      int
	NumPieces    int
	Size         int64
	WhiteCounts  [board.NumPieces]int
	BlackCounts  [board.NumPieces]int
	BishopParity [2]BishopParity
}

type blockKind int

const (
	blockPawns blockKind = iota
	blockGroup
)

type block struct {
	kind                     blockKind
	nWhitePawns, nBlackPawns int
	color                    board.Color
	piece                    board.Piece
	count                    int
	parity                   BishopParity
}

func (b block) size(r *Row) int64 {
	if b.kind == blockPawns {
		return pawnZoneSize(r.PawnFileType.Effective(), b.nWhitePawns, b.nBlackPawns)
	}
	if b.piece == board.Bishop {
		return bishopTupleSize(b.count, b.parity)
	}
	return tupleSize(b.count)
}

// blocks returns the row's piece groups in mb_position order: the pawn
// block first, then each color's non-pawn groups in descending material
// order (§4.4 steps 2-3).
func (r *Row) blocks() []block {
	blocks := []block{{kind: blockPawns, nWhitePawns: r.WhiteCounts[board.Pawn], nBlackPawns: r.BlackCounts[board.Pawn]}}

	for _, c := range [2]board.Color{board.White, board.Black} {
		counts := r.WhiteCounts
		parity := r.BishopParity[board.White]
		if c == board.Black {
			counts = r.BlackCounts
			parity = r.BishopParity[board.Black]
		}
		for _, p := range pieceOrder {
			k := counts[p]
			if k == 0 {
				continue
			}
			blocks = append(blocks, block{kind: blockGroup, color: c, piece: p, count: k, parity: parity})
		}
	}
	return blocks
}

func rowSize(r *Row) int64 {
	var size int64 = 1
	for _, b := range r.blocks() {
		size *= b.size(r)
	}
	return size
}

// Encode computes the zone index for a canonical placement, or AllOnes if
// this row cannot represent it (e.g. a bishop doesn't match the requested
// parity). pos[0]/pos[1] (the kings) are ignored; the rest must be laid
// out per the Row doc comment.
func (r *Row) Encode(pos []board.Square) int64 {
	blocks := r.blocks()
	values := make([]int64, len(blocks))

	idx := 2
	for i, b := range blocks {
		if b.kind == blockPawns {
			white := pos[idx : idx+b.nWhitePawns]
			idx += b.nWhitePawns
			black := pos[idx : idx+b.nBlackPawns]
			idx += b.nBlackPawns
			values[i] = pawnIndex(r.PawnFileType.Effective(), white, black)
		} else {
			sq := pos[idx : idx+b.count]
			idx += b.count
			if b.piece == board.Bishop {
				values[i] = bishopTupleIndex(sq, b.parity)
			} else {
				values[i] = tupleIndex(sq)
			}
		}
		if values[i] < 0 {
			return AllOnes
		}
	}

	var composite int64
	for i, b := range blocks {
		composite = composite*b.size(r) + values[i]
	}
	return composite
}

// Decode inverts Encode, returning the placements (without the kings,
// which the caller reconstructs from the kk_index) in mb_position order.
func (r *Row) Decode(zindex int64) []board.Square {
	blocks := r.blocks()
	sizes := make([]int64, len(blocks))
	for i, b := range blocks {
		sizes[i] = b.size(r)
	}

	values := make([]int64, len(blocks))
	rem := zindex
	for i := len(blocks) - 1; i >= 0; i-- {
		values[i] = rem % sizes[i]
		rem /= sizes[i]
	}

	var pos []board.Square
	for i, b := range blocks {
		if b.kind == blockPawns {
			w, bl := pawnDecode(r.PawnFileType.Effective(), values[i], b.nWhitePawns, b.nBlackPawns)
			pos = append(pos, w...)
			pos = append(pos, bl...)
		} else if b.piece == board.Bishop {
			pos = append(pos, bishopTupleDecode(b.count, values[i], b.parity)...)
		} else {
			pos = append(pos, tupleDecode(b.count, values[i])...)
		}
	}
	return pos
}
