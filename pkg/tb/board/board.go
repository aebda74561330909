package board

import (
	"fmt"
	"strings"
)

// Placement places a single piece of a color on a square, used only to
// build a Board (§3.1).
type Placement struct {
	Square Square
	Color  Color
	Piece  Piece
}

// Board holds a legal chess position with at most nine pieces plus the
// derived caches the indexing core needs on every probe: per-color,
// per-type counts and square lists, king squares, total piece count and
// per-side material strength. Immutable once constructed -- the probe
// pipeline never mutates a Board (§9 Open Questions).
type Board struct {
	squares  [NumSquares]piece // 0 = empty, else signed encoding (see piece type below)
	turn     Color
	epSquare Square
	hasEP    bool
	castling Castling
	halfmove int
	fullmove int

	count        [NumColors][NumPieces]int
	squaresByTyp [NumColors][NumPieces][]Square
	kingSquare   [NumColors]Square
	totalPieces  int
	strength     [NumColors]int
}

// piece is the signed on-square encoding: positive = white, negative =
// black, zero = empty, abs value in [Pawn..King] (§3.1).
type piece int8

func encode(c Color, p Piece) piece {
	if c == Black {
		return -piece(p)
	}
	return piece(p)
}

func (v piece) decode() (Color, Piece, bool) {
	if v == 0 {
		return 0, NoPiece, false
	}
	if v < 0 {
		return Black, Piece(-v), true
	}
	return White, Piece(v), true
}

// NewBoard validates and constructs a Board from a flat placement list.
func NewBoard(placements []Placement, turn Color, epSquare Square, hasEP bool, castling Castling, halfmove, fullmove int) (*Board, error) {
	b := &Board{turn: turn, epSquare: epSquare, hasEP: hasEP, castling: castling, halfmove: halfmove, fullmove: fullmove}

	seen := map[Square]bool{}
	for _, p := range placements {
		if !p.Square.IsValid() {
			return nil, fmt.Errorf("invalid square: %v", p.Square)
		}
		if !p.Piece.IsValid() {
			return nil, fmt.Errorf("invalid piece: %v", p.Piece)
		}
		if seen[p.Square] {
			return nil, fmt.Errorf("duplicate placement on %v", p.Square)
		}
		seen[p.Square] = true

		b.squares[p.Square] = encode(p.Color, p.Piece)
		b.count[p.Color][p.Piece]++
		b.squaresByTyp[p.Color][p.Piece] = append(b.squaresByTyp[p.Color][p.Piece], p.Square)
		if p.Piece == King {
			b.kingSquare[p.Color] = p.Square
		}
		b.totalPieces++
		b.strength[p.Color] += MaterialStrength(p.Piece, NoFairyPiece)
	}

	if b.count[White][King] != 1 || b.count[Black][King] != 1 {
		return nil, fmt.Errorf("exactly one king of each color is required")
	}
	if isAdjacent(b.kingSquare[White], b.kingSquare[Black]) {
		return nil, fmt.Errorf("kings cannot be adjacent")
	}
	if b.totalPieces < 2 {
		return nil, fmt.Errorf("at least two pieces are required")
	}
	if hasEP {
		if err := b.validateEnPassant(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func isAdjacent(a, b Square) bool {
	dr := a.Row() - b.Row()
	dc := a.Col() - b.Col()
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && a != b
}

// validateEnPassant checks that the e.p. square corresponds to an
// immediately preceding double pawn push with at least one enemy pawn
// adjacent on the skipped file (§3.1 invariant).
func (b *Board) validateEnPassant() error {
	row := b.epSquare.Row()
	col := b.epSquare.Col()

	var mover Color
	var pushedRow int
	switch row {
	case 2: // white pushed two, target is the skipped rank-3 square
		mover, pushedRow = White, 3
	case 5: // black pushed two, target is the skipped rank-6 square
		mover, pushedRow = Black, 4
	default:
		return fmt.Errorf("invalid en passant square: %v", b.epSquare)
	}

	pushedSq := NewSquare(pushedRow, col)
	if c, p, ok := b.Square(pushedSq); !ok || c != mover || p != Pawn {
		return fmt.Errorf("en passant square %v has no matching pushed pawn", b.epSquare)
	}

	opp := mover.Opponent()
	adjacent := false
	for _, dc := range []int{-1, 1} {
		nc := col + dc
		if nc < 0 || nc >= NCols {
			continue
		}
		if c, p, ok := b.Square(NewSquare(pushedRow, nc)); ok && c == opp && p == Pawn {
			adjacent = true
		}
	}
	if !adjacent {
		return fmt.Errorf("en passant square %v has no adjacent enemy pawn", b.epSquare)
	}
	return nil
}

// Square returns the color and piece occupying a square, if any.
func (b *Board) Square(sq Square) (Color, Piece, bool) {
	return b.squares[sq].decode()
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) EnPassant() (Square, bool) {
	return b.epSquare, b.hasEP
}

func (b *Board) Castling() Castling {
	return b.castling
}

func (b *Board) HalfMoveClock() int {
	return b.halfmove
}

func (b *Board) FullMoveNumber() int {
	return b.fullmove
}

// Count returns the number of pieces of the given color and type.
func (b *Board) Count(c Color, p Piece) int {
	return b.count[c][p]
}

// Squares returns the squares occupied by pieces of the given color and
// type, in no particular order.
func (b *Board) Squares(c Color, p Piece) []Square {
	return b.squaresByTyp[c][p]
}

func (b *Board) KingSquare(c Color) Square {
	return b.kingSquare[c]
}

func (b *Board) TotalPieces() int {
	return b.totalPieces
}

// Strength returns the side's material strength in pawns (§3.1), king
// excluded.
func (b *Board) Strength(c Color) int {
	return b.strength[c]
}

// Flip returns a new Board with colors swapped and the board reflected
// vertically (row -> NRows-1-row), per §4.7's "make the stronger side
// white" and the flipped-board fallback probe. Castling rights are not
// meaningful post-flip for the probe pipeline and are dropped; the
// half/full-move counters are carried over unchanged.
func (b *Board) Flip() *Board {
	var placements []Placement
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		c, p, ok := b.Square(sq)
		if !ok {
			continue
		}
		flipped := NewSquare(NRows-1-sq.Row(), sq.Col())
		placements = append(placements, Placement{Square: flipped, Color: c.Opponent(), Piece: p})
	}

	var epSq Square
	var hasEP bool
	if sq, ok := b.EnPassant(); ok {
		epSq, hasEP = NewSquare(NRows-1-sq.Row(), sq.Col()), true
	}

	fb, err := NewBoard(placements, b.turn.Opponent(), epSq, hasEP, NoCastlingRights, b.halfmove, b.fullmove)
	if err != nil {
		// Flipping a legal board is always legal; a failure indicates a
		// programming-contract violation, not a data error.
		panic(fmt.Sprintf("flip produced an illegal board: %v", err))
	}
	return fb
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := NRows - 1; row >= 0; row-- {
		for col := 0; col < NCols; col++ {
			if c, p, ok := b.Square(NewSquare(row, col)); ok {
				sb.WriteString(printPiece(c, p))
			} else {
				sb.WriteString("-")
			}
		}
		if row > 0 {
			sb.WriteRune('/')
		}
	}
	return fmt.Sprintf("%v %v castling=%v", sb.String(), b.turn, b.castling)
}
