// Package tbfen reads positions in FEN notation into the core's Board
// representation. It exists for test fixtures and the CLI; the probe
// pipeline itself never parses text (§1).
package tbfen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/egtb/pkg/tb/board"
)

// Decode returns a new Board from a FEN description.
//
// Example:
//
//	"8/2b5/8/8/3P4/pPP5/P7/2k1K3 w - - 0 1"
func Decode(fen string) (*board.Board, error) {
	// A FEN record contains six fields. The separator between fields is a
	// space. The fields are:

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", fen)
	}

	// (1) Piece placement (from white's perspective). Each rank is
	// described, starting with rank 8 and ending with rank 1; within each
	// rank, the contents of each square are described from file a through
	// file h.

	var pieces []board.Placement

	row, col := board.NRows-1, 0
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			if col != board.NCols {
				return nil, fmt.Errorf("invalid rank length in FEN: '%v'", fen)
			}
			row, col = row-1, 0

		case unicode.IsDigit(r):
			// Blank squares are noted using digits 1 through 8.

			col += int(r - '0')

		case unicode.IsLetter(r):
			// White pieces are designated using upper-case letters while
			// black take lowercase.

			piece, ok := board.ParsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", string(r), fen)
			}
			color := board.Black
			if unicode.IsUpper(r) {
				color = board.White
			}
			if row < 0 || col >= board.NCols {
				return nil, fmt.Errorf("invalid number of squares in FEN: '%v'", fen)
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(row, col), Color: color, Piece: piece})
			col++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", fen)
		}
	}
	if row != 0 || col != board.NCols {
		return nil, fmt.Errorf("invalid number of squares in FEN: '%v'", fen)
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	var turn board.Color
	switch parts[1] {
	case "w", "W":
		turn = board.White
	case "b", "B":
		turn = board.Black
	default:
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability. "-" if neither side can castle.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target square in algebraic notation, or "-".

	var ep board.Square
	var hasEP bool
	if parts[3] != "-" {
		if len(parts[3]) != 2 {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", fen)
		}
		sq, ok := board.ParseSquare(rune(parts[3][0]), rune(parts[3][1]))
		if !ok {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", fen)
		}
		ep, hasEP = sq, true
	}

	// (5) Halfmove clock: the number of halfmoves since the last pawn
	// advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return nil, fmt.Errorf("invalid halfmove in FEN: '%v'", fen)
	}

	// (6) Fullmove number: starts at 1, incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return nil, fmt.Errorf("invalid full moves in FEN: '%v'", fen)
	}

	return board.NewBoard(pieces, turn, ep, hasEP, castling, np, fm)
}

func parseCastling(s string) (board.Castling, bool) {
	if s == "-" {
		return board.NoCastlingRights, true
	}

	var c board.Castling
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return c, true
}
