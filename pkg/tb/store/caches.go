// Package store is the file layer: LRU-cached access to the three
// on-disk table families (MB, high-DTZ, YK) plus block fetch and
// decompression (§3.6, §4.6, §6).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/mathx"
)

// Default per-side cache capacities (§4.6).
const (
	MaxFilesMB      = 64
	MaxFilesHighDTZ = 64
	MaxFilesYK      = 16
)

// ErrFileMissing is returned when no registered root holds the requested
// table file. The probe engine treats it as "try the next variant" for MB
// files and as the terminal YK_FILE_MISSING condition for YK files.
var ErrFileMissing = errors.New("store: no table file found")

// Key identifies one MB or high-DTZ file within a side's cache: the
// ending basename, the directory specialization suffix (empty, a
// pawn-file-type suffix, or a bishop-parity suffix, per §6.2) and the
// canonical king-pair ordinal the file covers.
type Key struct {
	Basename string
	Spec     string
	KKIndex  int
}

func (k Key) String() string {
	return fmt.Sprintf("%v/%v/kk=%v", k.Basename, k.Spec, k.KKIndex)
}

// Options configures a Caches' per-side capacities. Unset fields use the
// defaults above.
type Options struct {
	MBFiles      lang.Optional[int]
	HighDTZFiles lang.Optional[int]
	YKFiles      lang.Optional[int]
}

func (o Options) mbFiles() int      { return capOr(o.MBFiles, MaxFilesMB) }
func (o Options) highDTZFiles() int { return capOr(o.HighDTZFiles, MaxFilesHighDTZ) }
func (o Options) ykFiles() int      { return capOr(o.YKFiles, MaxFilesYK) }

func capOr(opt lang.Optional[int], def int) int {
	if v, ok := opt.V(); ok {
		return mathx.Max(1, v)
	}
	return def
}

// Caches owns one probe Context's open-file state: per-side LRU caches
// over the three file families, plus the shared scratch buffers and
// decompressor every block fetch reuses (§3.6, §5). Not safe for
// concurrent use; each Context gets its own.
type Caches struct {
	buffers *Buffers

	mb [board.NumColors]*lru[Key, *mbFile]
	hi [board.NumColors]*lru[Key, *highDTZFile]
	yk [board.NumColors]*lru[string, *ykFile]
}

// NewCaches allocates empty caches with fresh scratch buffers.
func NewCaches(opts Options) *Caches {
	c := &Caches{buffers: NewBuffers()}
	for side := board.ZeroColor; side < board.NumColors; side++ {
		c.mb[side] = newLRU[Key, *mbFile](opts.mbFiles(), func(f *mbFile) { f.Close() })
		c.hi[side] = newLRU[Key, *highDTZFile](opts.highDTZFiles(), func(f *highDTZFile) { f.Close() })
		c.yk[side] = newLRU[string, *ykFile](opts.ykFiles(), func(f *ykFile) { f.Close() })
	}
	return c
}

// Close releases every cached file handle and the scratch buffers. The
// Caches must not be used afterwards.
func (c *Caches) Close() {
	for side := board.ZeroColor; side < board.NumColors; side++ {
		c.mb[side].Each(func(_ Key, f *mbFile) { f.Close() })
		c.hi[side].Each(func(_ Key, f *highDTZFile) { f.Close() })
		c.yk[side].Each(func(_ string, f *ykFile) { f.Close() })
	}
	c.buffers.Close()
}

func (c *Caches) openMB(ctx context.Context, side board.Color, key Key) (*mbFile, error) {
	if f, ok := c.mb[side].Get(key); ok {
		return f, nil
	}
	path, ok := findFile(dirName(key.Basename, key.Spec), mbFileName(key.Basename, side, key.KKIndex))
	if !ok {
		return nil, ErrFileMissing
	}
	f, err := openMBFile(path)
	if err != nil {
		logw.Warningf(ctx, "Failed to open mb file %v: %v", path, err)
		return nil, err
	}
	c.mb[side].Put(key, f)
	return f, nil
}

func (c *Caches) openHighDTZ(ctx context.Context, side board.Color, key Key) (*highDTZFile, error) {
	if f, ok := c.hi[side].Get(key); ok {
		return f, nil
	}
	path, ok := findFile(dirName(key.Basename, key.Spec), hiFileName(key.Basename, side, key.KKIndex))
	if !ok {
		return nil, ErrFileMissing
	}
	f, err := openHighDTZFile(path)
	if err != nil {
		logw.Warningf(ctx, "Failed to open high-dtz file %v: %v", path, err)
		return nil, err
	}
	c.hi[side].Put(key, f)
	return f, nil
}

func (c *Caches) openYK(ctx context.Context, side board.Color, basename string) (*ykFile, error) {
	if f, ok := c.yk[side].Get(basename); ok {
		return f, nil
	}
	path, ok := findFile(basename, ykFileName(basename, side))
	if !ok {
		return nil, ErrFileMissing
	}
	overflow, _ := findFile(basename, ykOverflowFileName(basename, side))
	f, err := openYKFile(path, overflow)
	if err != nil {
		logw.Warningf(ctx, "Failed to open yk file %v: %v", path, err)
		return nil, err
	}
	c.yk[side].Put(basename, f)
	return f, nil
}

// MBScore fetches the raw MB score byte for (key, zindex) from the
// side-to-move's file. ErrFileMissing means this particular variant has
// no file under any registered root.
func (c *Caches) MBScore(ctx context.Context, side board.Color, key Key, zindex int64) (byte, error) {
	f, err := c.openMB(ctx, side, key)
	if err != nil {
		return 0, err
	}
	return f.Score(c.buffers.Decompressor, c.buffers, zindex)
}

// HighDTZScore resolves an MB byte of 254 to the exact DTZ from the
// companion .hi file (§4.6 high-DTZ search).
func (c *Caches) HighDTZScore(ctx context.Context, side board.Color, key Key, zindex int64) (int32, error) {
	f, err := c.openHighDTZ(ctx, side, key)
	if err != nil {
		return 0, err
	}
	return f.Lookup(c.buffers.Decompressor, c.buffers, zindex)
}

// YKScore fetches the raw score byte from the legacy monolithic YK table
// (§6.3). zoneSize is the ending's per-kk_index zone width.
func (c *Caches) YKScore(ctx context.Context, side board.Color, basename string, kkIndex int, zoneSize, zindex int64) (byte, error) {
	f, err := c.openYK(ctx, side, basename)
	if err != nil {
		return 0, err
	}
	return f.Score(c.buffers.Decompressor, c.buffers, kkIndex, zoneSize, zindex)
}

// YKHighDTZ resolves a YK byte of 254 through the .__ overflow
// companion. None when no overflow file exists or the address is absent.
func (c *Caches) YKHighDTZ(ctx context.Context, side board.Color, basename string, kkIndex int, zoneSize, zindex int64) lang.Optional[int32] {
	f, err := c.openYK(ctx, side, basename)
	if err != nil {
		return lang.Optional[int32]{}
	}
	if dtc, ok := f.HighDTZ(kkIndex, zoneSize, zindex); ok {
		return lang.Some(dtc)
	}
	return lang.Optional[int32]{}
}
