package symmetry

import "github.com/herohde/egtb/pkg/tb/board"

// FlipNoPawns implements the pawnless flip-function contract (§4.2): after a
// pair has been canonicalized, if both kings sit fixed under the diagonal
// reflection (the residual stabilizer of the canonical triangular region's
// diagonal axis), the caller should also try ReflectD and keep whichever
// zindex is smaller. Kings fixed under the diagonal means wk.Row()==wk.Col()
// and bk.Row()==bk.Col() -- both on the main diagonal.
//
// An 8x8 board has an even side, so there is no center-square residual axis
// (the ODD_SQUARE case in the reference implementation); the diagonal check
// is the only one that ever applies here.
func FlipNoPawns(wk, bk board.Square) (Transform, bool) {
	if Apply(ReflectD, wk) == wk && Apply(ReflectD, bk) == bk {
		return ReflectD, true
	}
	return Identity, false
}

// FlipPawned implements the pawned flip-function contract. It never fires on
// an 8x8 board: the vertical reflection axis falls between columns D and E,
// so no square is fixed under ReflectV and the residual stabilizer is
// trivial (§4.2: "For 8x8, the vertical axis has no on-axis squares").
func FlipPawned(wk, bk board.Square) (Transform, bool) {
	return Identity, false
}
