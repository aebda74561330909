// Package probe is the top of the pipeline: it maps a Board to a Score
// by building the MBInfo probe key, consulting the file layer's caches,
// and reconciling the primary and flipped-board results (§4.7).
package probe

import (
	"context"
	"errors"
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/herohde/egtb/pkg/tb/combin"
	"github.com/herohde/egtb/pkg/tb/ending"
	"github.com/herohde/egtb/pkg/tb/mbinfo"
	"github.com/herohde/egtb/pkg/tb/store"
	"github.com/herohde/egtb/pkg/tb/symmetry"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

var initOnce sync.Once

// Init builds the combinatorial and symmetry tables. Idempotent;
// NewContext calls it, so explicit use is only needed to front-load the
// table construction cost (§5 lifecycle).
func Init() {
	initOnce.Do(func() {
		combin.Init()
		symmetry.Init()
	})
}

// AddPath registers a tablebase root directory on the process-global
// search list (§5, §6.4).
func AddPath(path string) {
	store.AddPath(path)
}

// Context owns one probe pipeline's mutable state: the per-side file
// caches and scratch buffers. Not safe for concurrent use; concurrent
// probing requires one Context per goroutine (§5).
type Context struct {
	caches *store.Caches
}

// NewContext allocates a fresh Context with empty caches.
func NewContext() *Context {
	Init()
	return &Context{caches: store.NewCaches(store.Options{})}
}

// Close releases every cached file handle and scratch buffer.
func (c *Context) Close() {
	c.caches.Close()
}

// Probe scores a position (§4.7). Exact scores are from the side to
// move's perspective: positive = wins in N, negative = loses in N. Data
// errors (missing or unreadable table files) surface as Unknown, never
// as a process failure.
func (c *Context) Probe(ctx context.Context, b *board.Board) Score {
	if b.Castling() != board.NoCastlingRights || b.TotalPieces() > mbinfo.MaxPiecesMB {
		return Unknown
	}
	if b.TotalPieces() == 2 {
		return Draw
	}
	if isBareMinorEnding(b) {
		return Draw
	}

	// Make the stronger side white to minimize flipped-fallback probes.
	// Flipping relabels colors without changing whose move it is, so the
	// side-to-move-relative score needs no sign correction.
	work := b
	if b.Strength(board.Black) > b.Strength(board.White) {
		work = b.Flip()
	}
	return c.resolve(ctx, work)
}

// isBareMinorEnding recognizes the 3-piece single-minor, no-pawn
// positions that are drawn without consulting any table.
func isBareMinorEnding(b *board.Board) bool {
	if b.TotalPieces() != 3 {
		return false
	}
	if b.Count(board.White, board.Pawn)+b.Count(board.Black, board.Pawn) > 0 {
		return false
	}
	minors := b.Count(board.White, board.Knight) + b.Count(board.White, board.Bishop) +
		b.Count(board.Black, board.Knight) + b.Count(board.Black, board.Bishop)
	return minors == 1
}

// resolve reconciles the primary table result with the flipped-board
// fallback (§4.7's reconciliation table). The tables store one-sided
// facts: a white-to-move file answers "white wins in N" (255 = does
// not win), a black-to-move file answers "black loses in N" (255 = does
// not lose). The flipped board's file supplies the other half.
func (c *Context) resolve(ctx context.Context, b *board.Board) Score {
	wtm := b.Turn() == board.White

	primary, perr := c.tableScore(ctx, b)
	if perr == nil {
		switch primary.Kind() {
		case KindPlies:
			n, _ := primary.Numeric()
			if wtm {
				return Plies(n) // white to move wins in n
			}
			return Plies(-n) // black to move loses in n
		case KindWon, KindLost, KindHighDtzMissing:
			return primary
		}
	}

	// Primary is UNRESOLVED or unreadable. With no black pieces there is
	// no flipped database: UNRESOLVED stands for DRAW.
	if perr == nil && blackPieceCount(b) == 0 {
		return Draw
	}
	if contextx.IsCancelled(ctx) {
		return Unknown
	}

	flipped, ferr := c.tableScore(ctx, b.Flip())
	if perr != nil && ferr != nil {
		return Unknown
	}

	if ferr == nil {
		switch flipped.Kind() {
		case KindPlies:
			// The flipped file reads from the other color's perspective:
			// for wtm it is a loss depth, for btm a win depth.
			m, _ := flipped.Numeric()
			if wtm {
				return Plies(-m)
			}
			return Plies(m)
		case KindWon, KindLost, KindHighDtzMissing:
			if flipped.Kind() == KindHighDtzMissing {
				return HighDtzMissing
			}
			// A non-numeric definite result for the flipped side collapses
			// to the partial tag for this side.
			if wtm {
				return NotLost
			}
			return NotWon
		case KindUnresolved:
			if perr != nil {
				// Only the flipped fact is known: white does not lose (wtm)
				// resp. black does not win (btm).
				if wtm {
					return NotLost
				}
				return NotWon
			}
			return Draw
		}
	}

	// Primary UNRESOLVED, flipped unreadable: only the primary fact is
	// known -- white does not win (wtm) resp. black does not lose (btm).
	logw.Debugf(ctx, "Flipped probe unavailable for %v: %v", b, ferr)
	if wtm {
		return NotWon
	}
	return NotLost
}

func blackPieceCount(b *board.Board) int {
	var n int
	for p := board.Pawn; p < board.King; p++ {
		n += b.Count(board.Black, p)
	}
	return n
}

// tableScore probes the file layer for one board orientation, returning
// the raw file-semantics score: Plies(N) with the unsigned on-disk
// depth, Unresolved, or HighDtzMissing. The error return reports that no
// file family could answer at all (§4.6's MB_FILE_MISSING then
// YK_FILE_MISSING cascade, or a read failure).
func (c *Context) tableScore(ctx context.Context, b *board.Board) (Score, error) {
	info, err := mbinfo.GetMBInfo(b)
	if err != nil {
		return Unknown, err
	}
	side := b.Turn()
	base := ending.BaseName(info.White, info.Black)

	// MB: every parity variant in order, then every pawn-file
	// specialization whose index is valid (§4.6).
	type candidate struct {
		key    store.Key
		zindex int64
	}
	var candidates []candidate
	for _, v := range info.Parity {
		candidates = append(candidates, candidate{
			key:    store.Key{Basename: base, Spec: ending.ParitySuffix(v.Parity), KKIndex: info.KKIndex},
			zindex: v.ZIndex,
		})
	}
	for _, v := range info.PawnVariants {
		if v.ZIndex == ending.AllOnes {
			continue
		}
		candidates = append(candidates, candidate{
			key:    store.Key{Basename: base, Spec: v.Type.DirSuffix(), KKIndex: info.KKIndex},
			zindex: v.ZIndex,
		})
	}

	for _, cand := range candidates {
		if contextx.IsCancelled(ctx) {
			return Unknown, ctx.Err()
		}
		raw, err := c.caches.MBScore(ctx, side, cand.key, cand.zindex)
		if err != nil {
			if errors.Is(err, store.ErrFileMissing) {
				continue
			}
			return Unknown, err
		}
		return c.resolveByte(ctx, side, cand.key, cand.zindex, raw)
	}

	// All MB candidates missing: fall through to the legacy YK table,
	// addressed by the unconstrained base variant.
	bv := info.Parity[0]
	raw, err := c.caches.YKScore(ctx, side, base, info.KKIndex, bv.Row.Size, bv.ZIndex)
	if err != nil {
		return Unknown, err
	}
	switch raw {
	case 255:
		return Unresolved, nil
	case 254:
		if dtc, ok := c.caches.YKHighDTZ(ctx, side, base, info.KKIndex, bv.Row.Size, bv.ZIndex).V(); ok {
			return Plies(int(dtc)), nil
		}
		return HighDtzMissing, nil
	default:
		return Plies(int(raw)), nil
	}
}

// resolveByte interprets an MB score byte (§4.6): 255 = UNRESOLVED,
// 254 = consult the high-DTZ companion, anything else the exact depth.
func (c *Context) resolveByte(ctx context.Context, side board.Color, key store.Key, zindex int64, raw byte) (Score, error) {
	switch raw {
	case 255:
		return Unresolved, nil
	case 254:
		dtz, err := c.caches.HighDTZScore(ctx, side, key, zindex)
		if err != nil {
			if errors.Is(err, store.ErrFileMissing) {
				return HighDtzMissing, nil
			}
			return Unknown, err
		}
		return Plies(int(dtz)), nil
	default:
		return Plies(int(raw)), nil
	}
}
