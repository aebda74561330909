// Package symmetry implements the board's dihedral symmetry group and the
// canonical king-pair (kk_index) tables built on top of it. Everything
// downstream that needs a canonical placement -- the ending classifier,
// the material info builder -- routes piece coordinates through the
// transforms exposed here.
package symmetry

import "github.com/herohde/egtb/pkg/tb/board"

// Transform identifies one of the 8 bijections of the square set. The
// ordering matches the reference table exactly since KK_Transform_Table
// entries and IndexTable encode/decode pairs are keyed by this ordinal.
type Transform int

const (
	Identity Transform = iota
	ReflectV
	ReflectH
	ReflectVH
	ReflectD
	ReflectDV
	ReflectDH
	ReflectDVH
	NumTransforms
)

func (t Transform) String() string {
	switch t {
	case Identity:
		return "Identity"
	case ReflectV:
		return "ReflectV"
	case ReflectH:
		return "ReflectH"
	case ReflectVH:
		return "ReflectVH"
	case ReflectD:
		return "ReflectD"
	case ReflectDV:
		return "ReflectDV"
	case ReflectDH:
		return "ReflectDH"
	case ReflectDVH:
		return "ReflectDVH"
	default:
		return "Unknown"
	}
}

// Apply maps a square through the given transform.
func Apply(t Transform, sq board.Square) board.Square {
	row, col := sq.Row(), sq.Col()
	switch t {
	case Identity:
		return sq
	case ReflectV:
		return board.NewSquare(row, board.NCols-1-col)
	case ReflectH:
		return board.NewSquare(board.NRows-1-row, col)
	case ReflectVH:
		return board.NewSquare(board.NRows-1-row, board.NCols-1-col)
	case ReflectD:
		return board.NewSquare(col, row)
	case ReflectDV:
		return board.NewSquare(board.NCols-1-col, row)
	case ReflectDH:
		return board.NewSquare(col, board.NRows-1-row)
	case ReflectDVH:
		return board.NewSquare(board.NCols-1-col, board.NRows-1-row)
	default:
		panic("symmetry: invalid transform")
	}
}

// Inverse returns the transform that undoes t. ReflectDV and ReflectDH are
// each other's inverse; every other transform (including the diagonal
// reflection on a square board) is self-inverse.
func Inverse(t Transform) Transform {
	switch t {
	case ReflectDV:
		return ReflectDH
	case ReflectDH:
		return ReflectDV
	default:
		return t
	}
}

func isAdjacent(a, b board.Square) bool {
	dr := a.Row() - b.Row()
	dc := a.Col() - b.Col()
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1
}
