// Package combin provides the combinatorial index tables that turn
// unordered (or parity/opposing-constrained) tuples of squares into a
// dense ordinal and back. These tables are the foundation the ending
// classifier (pkg/tb/ending) and material info builder (pkg/tb/mbinfo)
// compose into a full zone index (§4.1).
package combin

import (
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
)

const nsq = int(board.NumSquares)

// Sizes of the plain (unconstrained) tuple spaces, fixed by NROWS=NCOLS=8
// (§4.1). Fail-fast if the board package is ever reconfigured away from
// 8x8, since these constants -- and the on-disk zone layouts that assume
// them -- would no longer hold.
const (
	N2 = 2016    // C(64,2)
	N3 = 41664   // C(64,3)
	N4 = 635376  // C(64,4)
	N5 = 7624512 // C(64,5), computed on the fly
	N6 = 74974368
	N7 = 621216192
)

func init() {
	if board.NRows != 8 || board.NCols != 8 {
		panic("combin: combinatorial table sizes assume an 8x8 board")
	}
}

// roundUpOffset rounds n up to the next multiple of m, used to compose
// zone sizes that must land on a NSQUARES (or NSQUARES^2, for 6/7-piece
// strata) boundary for backward on-disk compatibility (§4.1).
func roundUpOffset(n, m int) int {
	if n%m == 0 {
		return n
	}
	return n + m - n%m
}

var (
	N2Offset = roundUpOffset(N2, nsq)
	N3Offset = roundUpOffset(N3, nsq)
	N4Offset = roundUpOffset(N4, nsq)
	N5Offset = roundUpOffset(N5, nsq)
	N6Offset = roundUpOffset(N6, nsq*nsq)
	N7Offset = roundUpOffset(N7, nsq*nsq)
)

var (
	initOnce sync.Once

	k2, k3, k4 []int32 // plain unordered tuple tables, -1 = invalid (duplicate square)
	k2rev      [][2]board.Square
	k3rev      [][3]board.Square
	k4rev      [][4]board.Square

	k5cum, k6cum, k7cum []int64 // cumulative binomial tables for the on-the-fly N5..N7 formulas
)

// Init builds every combinatorial table. Idempotent; safe to call from
// multiple goroutines (guarded by sync.Once), though a given Context must
// not probe concurrently with Init (§5).
func Init() {
	initOnce.Do(func() {
		k2, k2rev = buildK2()
		k3, k3rev = buildK3()
		k4, k4rev = buildK4()
		k5cum = buildBinomialCumulative(5)
		k6cum = buildBinomialCumulative(6)
		k7cum = buildBinomialCumulative(7)

		buildOddEven()
		buildOpposing()
	})
}

func idx2(a, b int) int { return a + nsq*b }
func idx3(a, b, c int) int { return a + nsq*(b+nsq*c) }
func idx4(a, b, c, d int) int { return a + nsq*(b+nsq*(c+nsq*d)) }

// buildK2 enumerates unordered pairs {p1,p2}, p1<p2, in ascending
// (p1,p2) order -- the same enumeration InitN2Tables in the reference
// implementation uses -- and fills both directions of the square table
// so N2Index is insensitive to argument order.
func buildK2() ([]int32, [][2]board.Square) {
	tab := make([]int32, nsq*nsq)
	for i := range tab {
		tab[i] = -1
	}
	var rev [][2]board.Square

	index := 0
	for p1 := 0; p1 < nsq; p1++ {
		for p2 := p1 + 1; p2 < nsq; p2++ {
			tab[idx2(p1, p2)] = int32(index)
			tab[idx2(p2, p1)] = int32(index)
			rev = append(rev, [2]board.Square{board.Square(p1), board.Square(p2)})
			index++
		}
	}
	if index != N2 {
		panic("combin: N2 table size mismatch")
	}
	return tab, rev
}

func buildK3() ([]int32, [][3]board.Square) {
	tab := make([]int32, nsq*nsq*nsq)
	for i := range tab {
		tab[i] = -1
	}
	var rev [][3]board.Square

	index := 0
	for p1 := 0; p1 < nsq; p1++ {
		for p2 := p1 + 1; p2 < nsq; p2++ {
			for p3 := p2 + 1; p3 < nsq; p3++ {
				for _, perm := range perms3(p1, p2, p3) {
					tab[idx3(perm[0], perm[1], perm[2])] = int32(index)
				}
				rev = append(rev, [3]board.Square{board.Square(p1), board.Square(p2), board.Square(p3)})
				index++
			}
		}
	}
	if index != N3 {
		panic("combin: N3 table size mismatch")
	}
	return tab, rev
}

func buildK4() ([]int32, [][4]board.Square) {
	tab := make([]int32, nsq*nsq*nsq*nsq)
	for i := range tab {
		tab[i] = -1
	}
	var rev [][4]board.Square

	index := 0
	for p1 := 0; p1 < nsq; p1++ {
		for p2 := p1 + 1; p2 < nsq; p2++ {
			for p3 := p2 + 1; p3 < nsq; p3++ {
				for p4 := p3 + 1; p4 < nsq; p4++ {
					for _, perm := range perms4(p1, p2, p3, p4) {
						tab[idx4(perm[0], perm[1], perm[2], perm[3])] = int32(index)
					}
					rev = append(rev, [4]board.Square{board.Square(p1), board.Square(p2), board.Square(p3), board.Square(p4)})
					index++
				}
			}
		}
	}
	if index != N4 {
		panic("combin: N4 table size mismatch")
	}
	return tab, rev
}

func perms3(a, b, c int) [][3]int {
	return [][3]int{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
}

func perms4(a, b, c, d int) [][4]int {
	var out [][4]int
	idx := []int{a, b, c, d}
	var perm func(k int)
	used := make([]bool, 4)
	cur := make([]int, 4)
	perm = func(k int) {
		if k == 4 {
			var p [4]int
			copy(p[:], cur)
			out = append(out, p)
			return
		}
		for i := 0; i < 4; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur[k] = idx[i]
			perm(k + 1)
			used[i] = false
		}
	}
	perm(0)
	return out
}

// N2Index returns the ordinal of the unordered pair {a,b}, a != b.
func N2Index(a, b board.Square) int {
	return int(k2[idx2(int(a), int(b))])
}

// N3Index returns the ordinal of the unordered triple {a,b,c}, distinct.
func N3Index(a, b, c board.Square) int {
	return int(k3[idx3(int(a), int(b), int(c))])
}

// N4Index returns the ordinal of the unordered quadruple {a,b,c,d}, distinct.
func N4Index(a, b, c, d board.Square) int {
	return int(k4[idx4(int(a), int(b), int(c), int(d))])
}

// DecodeN2/N3/N4 return the canonical (ascending) tuple for an ordinal
// produced by the corresponding N*Index function.
func DecodeN2(i int) (board.Square, board.Square) {
	t := k2rev[i]
	return t[0], t[1]
}

func DecodeN3(i int) (board.Square, board.Square, board.Square) {
	t := k3rev[i]
	return t[0], t[1], t[2]
}

func DecodeN4(i int) (board.Square, board.Square, board.Square, board.Square) {
	t := k4rev[i]
	return t[0], t[1], t[2], t[3]
}

// buildBinomialCumulative builds the k-tab used by N5_Index/N6_Index/
// N7_Index: ktab[a] is the number of unordered k-tuples whose largest
// element is strictly less than a, i.e. C(a,k). The index is then the
// cumulative count below the largest square plus the ordinal of the
// remaining (k-1)-tuple among squares below it.
func buildBinomialCumulative(k int) []int64 {
	tab := make([]int64, nsq+1)
	var cum int64
	for a := 0; a <= nsq; a++ {
		tab[a] = cum
		cum += binomial(a, k-1)
	}
	return tab
}

func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	var result int64 = 1
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
	}
	return result
}

func sortDesc5(a, b, c, d, e int) (int, int, int, int, int) {
	v := []int{a, b, c, d, e}
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
	return v[0], v[1], v[2], v[3], v[4]
}

// N5Index returns the ordinal of an unordered 5-tuple of distinct squares,
// computed on the fly from the closed-form formula (§4.1) rather than
// tabulated.
func N5Index(a, b, c, d, e board.Square) int64 {
	x1, x2, x3, x4, x5 := sortDesc5(int(a), int(b), int(c), int(d), int(e))
	return k5cum[x1] + binomial(x2, 4) + binomial(x3, 3) + binomial(x4, 2) + binomial(x5, 1)
}

func N6Index(a, b, c, d, e, f board.Square) int64 {
	v := []int{int(a), int(b), int(c), int(d), int(e), int(f)}
	max := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[max] {
			max = i
		}
	}
	v[0], v[max] = v[max], v[0]
	return k6cum[v[0]] + N5Index(board.Square(v[1]), board.Square(v[2]), board.Square(v[3]), board.Square(v[4]), board.Square(v[5]))
}

func N7Index(a, b, c, d, e, f, g board.Square) int64 {
	v := []int{int(a), int(b), int(c), int(d), int(e), int(f), int(g)}
	max := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[max] {
			max = i
		}
	}
	v[0], v[max] = v[max], v[0]
	return k7cum[v[0]] + N6Index(board.Square(v[1]), board.Square(v[2]), board.Square(v[3]), board.Square(v[4]), board.Square(v[5]), board.Square(v[6]))
}

// searchCumulative returns the largest a such that cum[a] <= target,
// inverting buildBinomialCumulative's monotonically nondecreasing table.
func searchCumulative(cum []int64, target int64) int {
	lo, hi := 0, len(cum)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cum[mid] <= target {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// greatestBinomialLE returns the largest x such that binomial(x,k) <= target.
func greatestBinomialLE(target int64, k int) int {
	x := k - 1
	for binomial(x+1, k) <= target {
		x++
	}
	return x
}

// DecodeN5 is the inverse of N5Index: given an ordinal, returns the unique
// descending-sorted 5-tuple of squares that produced it.
func DecodeN5(idx int64) (board.Square, board.Square, board.Square, board.Square, board.Square) {
	x1 := searchCumulative(k5cum, idx)
	rem := idx - k5cum[x1]
	x2 := greatestBinomialLE(rem, 4)
	rem -= binomial(x2, 4)
	x3 := greatestBinomialLE(rem, 3)
	rem -= binomial(x3, 3)
	x4 := greatestBinomialLE(rem, 2)
	rem -= binomial(x4, 2)
	x5 := int(rem)
	return board.Square(x1), board.Square(x2), board.Square(x3), board.Square(x4), board.Square(x5)
}

func DecodeN6(idx int64) (board.Square, board.Square, board.Square, board.Square, board.Square, board.Square) {
	x1 := searchCumulative(k6cum, idx)
	rem := idx - k6cum[x1]
	b, c, d, e, f := DecodeN5(rem)
	return board.Square(x1), b, c, d, e, f
}

func DecodeN7(idx int64) (board.Square, board.Square, board.Square, board.Square, board.Square, board.Square, board.Square) {
	x1 := searchCumulative(k7cum, idx)
	rem := idx - k7cum[x1]
	b, c, d, e, f, g := DecodeN6(rem)
	return board.Square(x1), b, c, d, e, f, g
}
