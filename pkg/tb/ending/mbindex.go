package ending

import (
	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/symmetry"
)

// GetMBIndex implements §4.5: canonicalize (wk,bk) via the symmetry
// engine, apply the transform to every piece in pos, encode via row, then
// try the residual flip and keep whichever zindex is smaller.
//
// pos[0]/pos[1] must be the white/black king squares, with the rest laid
// out per Row's doc comment. pawnsPresent selects the pawned vs pawnless
// kk_index table. Returns ok=false if the king pair is illegal (adjacent
// kings).
func GetMBIndex(row *Row, pos []board.Square, pawnsPresent bool) (kkIndex int, zindex int64, ok bool) {
	wk, bk := pos[0], pos[1]

	var transform symmetry.Transform
	if pawnsPresent {
		transform, ok = symmetry.KKTransformPawned(wk, bk)
	} else {
		transform, ok = symmetry.KKTransformNoPawns(wk, bk)
	}
	if !ok {
		return 0, 0, false
	}

	transformed := make([]board.Square, len(pos))
	for i, sq := range pos {
		transformed[i] = symmetry.Apply(transform, sq)
	}
	wk, bk = transformed[0], transformed[1]

	offset := row.Encode(transformed)

	var flipTransform symmetry.Transform
	var flipped bool
	if pawnsPresent {
		flipTransform, flipped = symmetry.FlipPawned(wk, bk)
	} else {
		flipTransform, flipped = symmetry.FlipNoPawns(wk, bk)
	}
	if flipped {
		tmp := make([]board.Square, len(transformed))
		for i, sq := range transformed {
			tmp[i] = symmetry.Apply(flipTransform, sq)
		}
		if alt := row.Encode(tmp); alt >= 0 && (offset < 0 || alt < offset) {
			offset = alt
			transformed = tmp
			wk, bk = transformed[0], transformed[1]
		}
	}

	if pawnsPresent {
		kkIndex, _ = symmetry.KKIndexPawned(wk, bk)
	} else {
		kkIndex, _ = symmetry.KKIndexNoPawns(wk, bk)
	}
	return kkIndex, offset, true
}
