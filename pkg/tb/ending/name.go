package ending

import (
	"strings"

	"github.com/herohde/egtb/pkg/tb/board"
)

// BaseName composes the ASCII ending name the on-disk layout keys
// directories and file basenames on (§6.1 basename field, §6.2 directory
// layout), e.g. a white queen vs black rook ending is "kqkr".
func BaseName(white, black [board.NumPieces]int) string {
	return "k" + materialLetters(white) + "k" + materialLetters(black)
}

func materialLetters(counts [board.NumPieces]int) string {
	var sb strings.Builder
	for _, p := range pieceOrder {
		for i := 0; i < counts[p]; i++ {
			sb.WriteString(p.String())
		}
	}
	for i := 0; i < counts[board.Pawn]; i++ {
		sb.WriteString(board.Pawn.String())
	}
	return sb.String()
}
