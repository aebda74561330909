package board

import "strings"

// Castling represents the set of castling rights as a bitset. The probe
// pipeline never mutates it (§9 Open Questions: castle is read-only
// input); a Board with any right set is rejected by the probe engine
// (§4.7) since the tables never cover castling-eligible positions.
type Castling uint8

const (
	WhiteKingSideCastle Castling = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
)

const NoCastlingRights Castling = 0

func (c Castling) IsAllowed(right Castling) bool {
	return c&right != 0
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}
