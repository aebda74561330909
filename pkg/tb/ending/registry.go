package ending

import (
	"fmt"
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
)

type rowKey struct {
	tag          int
	pawnFileType PawnFileType
	subType      int
}

var (
	registryMu sync.Mutex
	registry   = map[rowKey]*Row{}
)

// GetEndingType classifies a material configuration into a Row (§4.3),
// building and memoizing it on first use. In place of a static ~200-row
// table scanned linearly, each distinct (tag, pawn-file type, sub_type)
// triple gets its Row assembled on demand from the composable group
// encoders in composer.go/pawns.go/row.go; the memoizing map plays the
// role of the registry, and lookups for a triple never seen before are the
// only ones that pay the (cheap) assembly cost.
//
// Returns an error if the pawn counts don't match pawnFileType's
// expectation (ETYPE_NOT_MAPPED in spirit -- the caller maps this to that
// error kind).
func GetEndingType(white, black [board.NumPieces]int, pft PawnFileType, parity [2]BishopParity) (*Row, error) {
	if w, b, ok := pft.WhiteBlackCounts(); ok {
		if white[board.Pawn] != w || black[board.Pawn] != b {
			return nil, fmt.Errorf("ending: pawn counts %d/%d do not match %v", white[board.Pawn], black[board.Pawn], pft)
		}
	}

	tag := EndingTag(white, black, pft)
	subType := composeSubType(white, black, parity)
	effective := pft.Effective()
	key := rowKey{tag: tag, pawnFileType: effective, subType: subType}

	registryMu.Lock()
	defer registryMu.Unlock()

	if row, ok := registry[key]; ok {
		return row, nil
	}

	numPieces := 2
	for p := board.Pawn; p < board.King; p++ {
		numPieces += white[p] + black[p]
	}

	row := &Row{
		Tag:          tag,
		PawnFileType: pft,
		SubType:      subType,
		NumPieces:    numPieces,
		WhiteCounts:  white,
		BlackCounts:  black,
		BishopParity: parity,
	}
	row.Size = rowSize(row)
	registry[key] = row
	return row, nil
}
