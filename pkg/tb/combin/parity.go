package combin

import "github.com/herohde/egtb/pkg/tb/board"

var (
	N2OddParity, N2EvenParity   int
	N3OddParity, N3EvenParity   int
	N2OddOffset, N2EvenOffset   int
	N3OddOffset, N3EvenOffset   int

	k2odd, k2even []int32
	k3odd, k3even []int32

	k2oddRev, k2evenRev [][2]board.Square
	k3oddRev, k3evenRev [][3]board.Square
)

// buildOddEven builds the bishop-parity-restricted 2 and 3-tuple tables
// (§4.1): pairs/triples of squares whose colors (per Square.Color) are
// all alike ("even") or split two-one ("odd" -- for pairs this means
// differing colors, for triples it means not all three alike).
func buildOddEven() {
	k2even, k2evenRev = buildK2Parity(true)
	k2odd, k2oddRev = buildK2Parity(false)
	N2EvenParity, N2OddParity = len(k2evenRev), len(k2oddRev)
	N2EvenOffset = roundUpOffset(N2EvenParity, nsq)
	N2OddOffset = roundUpOffset(N2OddParity, nsq)

	k3even, k3evenRev = buildK3Parity(true)
	k3odd, k3oddRev = buildK3Parity(false)
	N3EvenParity, N3OddParity = len(k3evenRev), len(k3oddRev)
	N3EvenOffset = roundUpOffset(N3EvenParity, nsq)
	N3OddOffset = roundUpOffset(N3OddParity, nsq)
}

func buildK2Parity(wantSame bool) ([]int32, [][2]board.Square) {
	tab := make([]int32, nsq*nsq)
	for i := range tab {
		tab[i] = -1
	}
	var rev [][2]board.Square

	index := 0
	for p1 := 0; p1 < nsq; p1++ {
		c1 := board.Square(p1).Color()
		for p2 := p1 + 1; p2 < nsq; p2++ {
			c2 := board.Square(p2).Color()
			same := c1 == c2
			if same != wantSame {
				continue
			}
			tab[idx2(p1, p2)] = int32(index)
			tab[idx2(p2, p1)] = int32(index)
			rev = append(rev, [2]board.Square{board.Square(p1), board.Square(p2)})
			index++
		}
	}
	return tab, rev
}

// buildK3Parity matches the reference InitN3Even/OddTables: "even" means
// all three squares share a color, "odd" means they do not all match.
func buildK3Parity(wantAllSame bool) ([]int32, [][3]board.Square) {
	tab := make([]int32, nsq*nsq*nsq)
	for i := range tab {
		tab[i] = -1
	}
	var rev [][3]board.Square

	index := 0
	for p1 := 0; p1 < nsq; p1++ {
		c1 := board.Square(p1).Color()
		for p2 := p1 + 1; p2 < nsq; p2++ {
			c2 := board.Square(p2).Color()
			for p3 := p2 + 1; p3 < nsq; p3++ {
				c3 := board.Square(p3).Color()
				allSame := c1 == c2 && c2 == c3
				if allSame != wantAllSame {
					continue
				}
				for _, perm := range perms3(p1, p2, p3) {
					tab[idx3(perm[0], perm[1], perm[2])] = int32(index)
				}
				rev = append(rev, [3]board.Square{board.Square(p1), board.Square(p2), board.Square(p3)})
				index++
			}
		}
	}
	return tab, rev
}

// N2OddIndex/N2EvenIndex return the ordinal of a parity-restricted pair,
// or -1 if the pair does not belong to the requested parity class.
func N2OddIndex(a, b board.Square) int  { return int(k2odd[idx2(int(a), int(b))]) }
func N2EvenIndex(a, b board.Square) int { return int(k2even[idx2(int(a), int(b))]) }

func N3OddIndex(a, b, c board.Square) int  { return int(k3odd[idx3(int(a), int(b), int(c))]) }
func N3EvenIndex(a, b, c board.Square) int { return int(k3even[idx3(int(a), int(b), int(c))]) }

func DecodeN2Odd(i int) (board.Square, board.Square)   { t := k2oddRev[i]; return t[0], t[1] }
func DecodeN2Even(i int) (board.Square, board.Square)  { t := k2evenRev[i]; return t[0], t[1] }
func DecodeN3Odd(i int) (board.Square, board.Square, board.Square) {
	t := k3oddRev[i]
	return t[0], t[1], t[2]
}
func DecodeN3Even(i int) (board.Square, board.Square, board.Square) {
	t := k3evenRev[i]
	return t[0], t[1], t[2]
}
