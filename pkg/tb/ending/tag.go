package ending

import "github.com/herohde/egtb/pkg/tb/board"

// EndingTag composes the scalar tag a material configuration maps to
// (§3.2-§3.3). It does not attempt to reproduce the source's historical
// decimal packing byte-for-byte -- that worked example does not itself
// resolve to a consistent value, see DESIGN.md -- only to guarantee the
// one property the registry actually depends on: distinct material
// configurations (including distinct pawn-file specializations of the
// same counts) produce distinct tags, with pawns weighted first.
func EndingTag(white, black [board.NumPieces]int, pft PawnFileType) int {
	tag := 0
	tag = tag*10 + white[board.Pawn]
	tag = tag*10 + black[board.Pawn]
	for _, p := range pieceOrder {
		tag = tag*10 + white[p]
	}
	for _, p := range pieceOrder {
		tag = tag*10 + black[p]
	}
	if pft != FREE {
		tag = tag*10 + int(pft)
	}
	return tag
}

// composeSubType implements §4.3 step 3: a per-color digit pair (bishop
// count, parity bit), concatenated as 100*white + black. Zero when a color
// has no parity constraint.
func composeSubType(white, black [board.NumPieces]int, parity [2]BishopParity) int {
	w := subTypeDigit(white[board.Bishop], parity[board.White])
	b := subTypeDigit(black[board.Bishop], parity[board.Black])
	return 100*w + b
}

func subTypeDigit(count int, parity BishopParity) int {
	if parity == ParityNone {
		return 0
	}
	d := 0
	if parity == ParityOdd {
		d = 1
	}
	return count*10 + d
}
