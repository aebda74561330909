package board

// Piece represents a chess piece type, colorless. The ordering
// Pawn < Knight < Bishop < Rook < Queen < King is the "material order"
// used throughout the ending classifier and IndexTable registry: heavier
// pieces sort later, and pieces of the same type are grouped together.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	ZeroPiece Piece = Pawn
	NumPieces Piece = King + 1
)

// Strength is the material value of a piece, in pawns. The probe engine
// compares the two sides' totals (Board.Strength) to decide which color
// to present as white; the indexing core does not consult it. Archbishop, Cardinal and Maharaja are fairy pieces recognized here
// for completeness of the strength table (§3.1); they are never valid
// inputs to the ending classifier (see pkg/tb/ending), which is scoped,
// like the on-disk formats, to the six orthodox piece types.
type Strength uint8

const (
	NoFairyPiece FairyPiece = iota
	Archbishop
	Cardinal
	Maharaja
)

// FairyPiece enumerates piece types outside the orthodox six that
// MaterialStrength recognizes but which the indexing core rejects.
type FairyPiece uint8

func (p Piece) IsValid() bool {
	return Pawn <= p && p <= King
}

func ParsePiece(r rune) (Piece, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPiece, false
	}
}

func (p Piece) String() string {
	switch p {
	case NoPiece:
		return "-"
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

func printPiece(c Color, p Piece) string {
	if c == White {
		switch p {
		case Pawn:
			return "P"
		case Knight:
			return "N"
		case Bishop:
			return "B"
		case Rook:
			return "R"
		case Queen:
			return "Q"
		case King:
			return "K"
		}
	}
	return p.String()
}

// MaterialStrength returns the value of a piece in pawns, per §3.1:
// pawn=1, knight=bishop=3, rook=5, queen=9, archbishop=7, cardinal=8,
// maharaja=13; king (and no-piece) excluded, value 0.
func MaterialStrength(p Piece, fairy FairyPiece) int {
	switch fairy {
	case Archbishop:
		return 7
	case Cardinal:
		return 8
	case Maharaja:
		return 13
	}
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}
