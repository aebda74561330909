// Package mbinfo builds the canonical probe key (MBInfo) a Board maps to:
// the canonical mb_position, its kk_index, and every queryable
// (row, zindex) variant the file layer should try in order (§3.5, §4.4).
package mbinfo

import (
	"fmt"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/ending"
)

// MaxPiecesMB is the largest total piece count (both kings included) the
// MB format indexes (§4.4).
const MaxPiecesMB = 9

// ParityVariant is one queryable (row, zindex) pair keyed by a
// bishop-parity constraint (§3.5 parity_index entries).
type ParityVariant struct {
	Row    *ending.Row
	ZIndex int64
	Parity [2]ending.BishopParity
}

// PawnVariant is one queryable (row, zindex) pair keyed by a
// pawn-file-type specialization (§3.5's up-to-15 pawn variant entries).
type PawnVariant struct {
	Row    *ending.Row
	ZIndex int64
	Type   ending.PawnFileType
}

// MBInfo is the probe key derived from a Board (§3.5). It is constructed
// fresh per probe and never persisted.
type MBInfo struct {
	White, Black [board.NumPieces]int
	KKIndex      int
	PawnsPresent bool
	PawnFileType ending.PawnFileType

	// Parity holds the unconstrained base variant first (always present),
	// then -- for pawnless positions only -- up to 3 bishop-parity
	// variants: the fully-constrained pair, then (if both colors are
	// constrained) the two half-constrained ones (§4.4 step 7).
	Parity []ParityVariant

	// PawnVariants holds the specialized pawn-file-type variant, when the
	// position's pawn shape was recognized as one of the BP_11/OP_*
	// specializations (§4.4 step 6). Empty for FREE.
	PawnVariants []PawnVariant
}

// GetMBInfo builds the probe key for b, per §4.4. Returns an error for
// positions over the 9-piece limit, an unmapped ending (ETYPE_NOT_MAPPED
// in spec terms), or an illegal king pair (adjacent kings).
func GetMBInfo(b *board.Board) (*MBInfo, error) {
	total := b.TotalPieces()
	if total > MaxPiecesMB {
		return nil, fmt.Errorf("mbinfo: %d pieces exceeds the %d-piece limit", total, MaxPiecesMB)
	}

	var white, black [board.NumPieces]int
	for p := board.Pawn; p < board.King; p++ {
		white[p] = b.Count(board.White, p)
		black[p] = b.Count(board.Black, p)
	}
	pawnsPresent := white[board.Pawn] > 0 || black[board.Pawn] > 0

	pos := buildMBPosition(b)
	pft := classifyPawnFileType(b, white[board.Pawn], black[board.Pawn])

	info := &MBInfo{White: white, Black: black, PawnsPresent: pawnsPresent, PawnFileType: pft}

	base, err := ending.GetEndingType(white, black, ending.FREE, [2]ending.BishopParity{})
	if err != nil {
		return nil, err
	}
	kkIndex, zindex, ok := ending.GetMBIndex(base, pos, pawnsPresent)
	if !ok {
		return nil, fmt.Errorf("mbinfo: illegal king pair")
	}
	info.KKIndex = kkIndex
	info.Parity = append(info.Parity, ParityVariant{Row: base, ZIndex: zindex})

	if pft != ending.FREE {
		if row, err := ending.GetEndingType(white, black, pft, [2]ending.BishopParity{}); err == nil {
			if _, zi, ok := ending.GetMBIndex(row, pos, pawnsPresent); ok {
				info.PawnVariants = append(info.PawnVariants, PawnVariant{Row: row, ZIndex: zi, Type: pft})
			}
		}
	}

	if !pawnsPresent {
		info.Parity = append(info.Parity, bishopParityVariants(b, white, black, pos)...)
	}

	return info, nil
}

// bishopParityVariants computes the up-to-3 additional pawnless
// bishop-parity variants (§4.4 step 7): the fully-constrained pair when
// either color has a parity-expressible bishop group, then -- if both
// colors do -- the two half-constrained variants.
func bishopParityVariants(b *board.Board, white, black [board.NumPieces]int, pos []board.Square) []ParityVariant {
	wParity := dominantBishopParity(b, board.White)
	bParity := dominantBishopParity(b, board.Black)
	if wParity == ending.ParityNone && bParity == ending.ParityNone {
		return nil
	}

	tryVariant := func(parity [2]ending.BishopParity) (ParityVariant, bool) {
		row, err := ending.GetEndingType(white, black, ending.FREE, parity)
		if err != nil {
			return ParityVariant{}, false
		}
		_, zi, ok := ending.GetMBIndex(row, pos, false)
		if !ok {
			return ParityVariant{}, false
		}
		return ParityVariant{Row: row, ZIndex: zi, Parity: parity}, true
	}

	var out []ParityVariant
	if v, ok := tryVariant([2]ending.BishopParity{wParity, bParity}); ok {
		out = append(out, v)
	}
	if wParity != ending.ParityNone && bParity != ending.ParityNone {
		if v, ok := tryVariant([2]ending.BishopParity{wParity, ending.ParityNone}); ok {
			out = append(out, v)
		}
		if v, ok := tryVariant([2]ending.BishopParity{ending.ParityNone, bParity}); ok {
			out = append(out, v)
		}
	}
	return out
}
