// Package ending classifies a material configuration into an "ending
// type" and provides the composable (encode, decode) index functions that
// turn canonical piece placements into a dense zone index (§3.2-§3.3,
// §4.3-§4.5).
package ending

import "github.com/herohde/egtb/pkg/tb/board"

// PawnFileType distinguishes the pawn-structure shapes that get a
// specialized, smaller index space instead of the unconstrained
// enumeration (§3.2).
type PawnFileType int

const (
	FREE PawnFileType = iota
	BP11
	OP11
	OP21
	OP12
	OP22
	DP22
	OP31
	OP13
	OP41
	OP14
	OP32
	OP23
	OP33
	OP42
	OP24
)

func (t PawnFileType) String() string {
	switch t {
	case FREE:
		return "FREE"
	case BP11:
		return "BP_11"
	case OP11:
		return "OP_11"
	case OP21:
		return "OP_21"
	case OP12:
		return "OP_12"
	case OP22:
		return "OP_22"
	case DP22:
		return "DP_22"
	case OP31:
		return "OP_31"
	case OP13:
		return "OP_13"
	case OP41:
		return "OP_41"
	case OP14:
		return "OP_14"
	case OP32:
		return "OP_32"
	case OP23:
		return "OP_23"
	case OP33:
		return "OP_33"
	case OP42:
		return "OP_42"
	case OP24:
		return "OP_24"
	default:
		return "UNKNOWN"
	}
}

// Effective returns the pawn-file type the zone encoding actually keys on.
// The seven-piece "larger" splits reuse the free-pawn enumeration while
// still selecting a specialized ending tag (§4.3 edge policy).
func (t PawnFileType) Effective() PawnFileType {
	switch t {
	case OP41, OP14, OP32, OP23, OP33, OP42, OP24:
		return FREE
	default:
		return t
	}
}

// WhiteBlackCounts returns the (white, black) pawn counts this pawn-file
// type requires. ok is false for FREE, which accepts any pawn counts.
func (t PawnFileType) WhiteBlackCounts() (w, b int, ok bool) {
	switch t {
	case BP11, OP11:
		return 1, 1, true
	case OP21:
		return 2, 1, true
	case OP12:
		return 1, 2, true
	case OP22, DP22:
		return 2, 2, true
	case OP31:
		return 3, 1, true
	case OP13:
		return 1, 3, true
	case OP41:
		return 4, 1, true
	case OP14:
		return 1, 4, true
	case OP32:
		return 3, 2, true
	case OP23:
		return 2, 3, true
	case OP33:
		return 3, 3, true
	case OP42:
		return 4, 2, true
	case OP24:
		return 2, 4, true
	default:
		return 0, 0, false
	}
}

// BishopParity classifies how a color's 2- or 3-bishop group sits on the
// square colors: ParityEven when all its bishops stand on squares of one
// color, ParityOdd when they do not. Used to split pawnless endings with
// multiple bishops (§3.2, GLOSSARY).
type BishopParity int

const (
	ParityNone BishopParity = iota
	ParityEven
	ParityOdd
)

func (p BishopParity) String() string {
	switch p {
	case ParityEven:
		return "EVEN"
	case ParityOdd:
		return "ODD"
	default:
		return "NONE"
	}
}

// pieceOrder is the descending-value non-pawn, non-king piece order used
// both by the mb_position layout (§4.4 step 3, "KING-1 down to KNIGHT")
// and by the Row composer below.
var pieceOrder = []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

// DirSuffix returns the pawn-file-type directory suffix segment the
// on-disk layout uses to distinguish pawn-structure specializations
// (§6.2), e.g. BP11 -> "bp1", OP22 -> "op22". FREE carries no suffix.
func (t PawnFileType) DirSuffix() string {
	switch t {
	case BP11:
		return "bp1"
	case OP11:
		return "op1"
	case OP21:
		return "op21"
	case OP12:
		return "op12"
	case OP22:
		return "op22"
	case DP22:
		return "dp2"
	case OP31:
		return "op31"
	case OP13:
		return "op13"
	case OP41:
		return "op41"
	case OP14:
		return "op14"
	case OP32:
		return "op32"
	case OP23:
		return "op23"
	case OP33:
		return "op33"
	case OP42:
		return "op42"
	case OP24:
		return "op24"
	default:
		return ""
	}
}

// ParitySuffix returns the directory suffix segment for a pawnless
// bishop-parity variant (§6.2): "wbe"/"wbo" for a white-only constraint,
// "bbe"/"bbo" for black-only, and the two joined with "_" when both
// colors are constrained. Empty when neither color carries one.
func ParitySuffix(parity [2]BishopParity) string {
	var parts []string
	if parity[board.White] != ParityNone {
		parts = append(parts, "wb"+parityLetter(parity[board.White]))
	}
	if parity[board.Black] != ParityNone {
		parts = append(parts, "bb"+parityLetter(parity[board.Black]))
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "_" + p
	}
	return out
}

func parityLetter(p BishopParity) string {
	if p == ParityOdd {
		return "o"
	}
	return "e"
}
