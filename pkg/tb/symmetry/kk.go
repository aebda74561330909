package symmetry

import (
	"fmt"
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
)

const nsq = int(board.NumSquares)

// NumKingPairsNoPawns and NumKingPairsPawned are the totals of legal
// canonical (white-king, black-king) pairs for the pawnless (8 symmetries,
// dihedral of the square) and pawned (4 symmetries, vertical reflection
// only) cases on an 8x8 board (§3.4).
const (
	NumKingPairsNoPawns = 462
	NumKingPairsPawned  = 1806
)

var (
	initOnce sync.Once

	kkIndexNoPawns, kkTransformNoPawns []int32
	kkIndexPawned, kkTransformPawned  []int32

	kkListNoPawns [][2]board.Square
	kkListPawned  [][2]board.Square
)

// Init builds the kk_index/transform tables. Idempotent; safe to call from
// multiple goroutines.
func Init() {
	initOnce.Do(func() {
		kkIndexNoPawns, kkTransformNoPawns, kkListNoPawns = buildKK(CanonicalNoPawns)
		if len(kkListNoPawns) != NumKingPairsNoPawns {
			panic(fmt.Sprintf("symmetry: pawnless kk_index table size mismatch: got %d, want %d", len(kkListNoPawns), NumKingPairsNoPawns))
		}

		kkIndexPawned, kkTransformPawned, kkListPawned = buildKK(CanonicalPawned)
		if len(kkListPawned) != NumKingPairsPawned {
			panic(fmt.Sprintf("symmetry: pawned kk_index table size mismatch: got %d, want %d", len(kkListPawned), NumKingPairsPawned))
		}
	})
}

type canonicalFunc func(wk, bk board.Square) (board.Square, board.Square, Transform, bool)

// buildKK mirrors InitTransforms's KK_Index/KK_Transform table construction:
// for every (wk,bk) pair, record the transform that canonicalizes it; when
// that transform is Identity (the pair IS its own canonical representative)
// assign it the next sequential kk_index.
func buildKK(canon canonicalFunc) ([]int32, []int32, [][2]board.Square) {
	index := make([]int32, nsq*nsq)
	transform := make([]int32, nsq*nsq)
	for i := range index {
		index[i] = -1
		transform[i] = -1
	}

	var list [][2]board.Square
	n := 0
	for wk := 0; wk < nsq; wk++ {
		for bk := 0; bk < nsq; bk++ {
			wkT, bkT, sym, ok := canon(board.Square(wk), board.Square(bk))
			if !ok {
				continue
			}
			transform[wk*nsq+bk] = int32(sym)
			if sym == Identity {
				list = append(list, [2]board.Square{wkT, bkT})
				index[wk*nsq+bk] = int32(n)
				n++
			}
		}
	}
	return index, transform, list
}

// CanonicalNoPawns finds the symmetry that maps (wk,bk) into the pawnless
// canonical region: row <= col <= (NCols-1)/2 triangle with axis tie-breakers
// forcing the black king (§3.4, §4.2). Returns false for adjacent kings.
func CanonicalNoPawns(wk, bk board.Square) (board.Square, board.Square, Transform, bool) {
	if isAdjacent(wk, bk) {
		return 0, 0, 0, false
	}
	for sym := Transform(0); sym < NumTransforms; sym++ {
		wkT := Apply(sym, wk)
		bkT := Apply(sym, bk)
		wr, wc := wkT.Row(), wkT.Col()
		if wr >= 4 || wc >= 4 || wr > wc {
			continue
		}
		if wr == wc {
			br, bc := bkT.Row(), bkT.Col()
			if br > bc {
				continue
			}
		}
		return wkT, bkT, sym, true
	}
	return 0, 0, 0, false
}

// CanonicalPawned finds the symmetry (restricted to Identity and ReflectV)
// that maps (wk,bk) into the pawned canonical region: white king confined to
// columns < NCols/2. NCols is even for an 8x8 board, so there is no on-axis
// tie-break (§4.2).
func CanonicalPawned(wk, bk board.Square) (board.Square, board.Square, Transform, bool) {
	if isAdjacent(wk, bk) {
		return 0, 0, 0, false
	}
	for _, sym := range []Transform{Identity, ReflectV} {
		wkT := Apply(sym, wk)
		bkT := Apply(sym, bk)
		if wkT.Col() < (board.NCols+1)/2 {
			return wkT, bkT, sym, true
		}
	}
	return 0, 0, 0, false
}

// KKTransformNoPawns/KKTransformPawned return the symmetry that canonicalizes
// (wk,bk), or ok=false if the pair is illegal (adjacent kings).
func KKTransformNoPawns(wk, bk board.Square) (Transform, bool) {
	v := kkTransformNoPawns[int(wk)*nsq+int(bk)]
	if v < 0 {
		return 0, false
	}
	return Transform(v), true
}

func KKTransformPawned(wk, bk board.Square) (Transform, bool) {
	v := kkTransformPawned[int(wk)*nsq+int(bk)]
	if v < 0 {
		return 0, false
	}
	return Transform(v), true
}

// KKIndexNoPawns/KKIndexPawned return the kk_index of (wk,bk) when it is
// ALREADY the canonical representative (i.e. KKTransform*(wk,bk) ==
// Identity); ok is false otherwise, matching the reference contract -- the
// caller must apply the transform first and look up the result (§4.2).
func KKIndexNoPawns(wk, bk board.Square) (int, bool) {
	v := kkIndexNoPawns[int(wk)*nsq+int(bk)]
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

func KKIndexPawned(wk, bk board.Square) (int, bool) {
	v := kkIndexPawned[int(wk)*nsq+int(bk)]
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

// KKPairNoPawns/KKPairPawned return the canonical (wk,bk) pair at the given
// kk_index, the inverse of KKIndexNoPawns/KKIndexPawned.
func KKPairNoPawns(kkIndex int) (board.Square, board.Square) {
	p := kkListNoPawns[kkIndex]
	return p[0], p[1]
}

func KKPairPawned(kkIndex int) (board.Square, board.Square) {
	p := kkListPawned[kkIndex]
	return p[0], p[1]
}

// CanonicalizeNoPawns/CanonicalizePawned resolve an arbitrary (wk,bk) pair to
// its symmetry transform and kk_index in one step (§4.5 step 1).
func CanonicalizeNoPawns(wk, bk board.Square) (Transform, int, bool) {
	t, ok := KKTransformNoPawns(wk, bk)
	if !ok {
		return 0, 0, false
	}
	idx, _ := KKIndexNoPawns(Apply(t, wk), Apply(t, bk))
	return t, idx, true
}

func CanonicalizePawned(wk, bk board.Square) (Transform, int, bool) {
	t, ok := KKTransformPawned(wk, bk)
	if !ok {
		return 0, 0, false
	}
	idx, _ := KKIndexPawned(Apply(t, wk), Apply(t, bk))
	return t, idx, true
}
