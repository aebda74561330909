package store

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/herohde/egtb/pkg/tb/compress"
)

// hDataRecordSize is the byte width of one HData overflow record: a
// 4-byte exact DTC, a 4-byte kk_index, and an 8-byte within-zone
// offset (§6.3 names the HData{dtc,kindex,offset} fields but not their
// byte layout; this ordering and width is this store's own choice --
// see DESIGN.md).
const hDataRecordSize = 16

// ykFile is one opened legacy .yk table together with its optional
// .__ high-DTC overflow companion (§6.3). Unlike the MB family, a YK
// file is not sharded by kk_index: one file covers every canonical
// king pair for its ending+side, so a position's address is the
// concatenation of each kk_index's zindex-sized zone, in kk_index
// order.
type ykFile struct {
	f        *os.File
	header   ykHeader
	offsets  []int64
	overflow *os.File
}

func openYKFile(path, overflowPath string) (*ykFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, ykHeaderSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("store: reading yk header %s: %w", path, err)
	}
	h, err := parseYKHeader(buf)
	if err != nil {
		f.Close()
		return nil, err
	}
	offsets, err := readOffsets(f, ykHeaderSize, int(h.NumBlocks)+1)
	if err != nil {
		f.Close()
		return nil, err
	}

	y := &ykFile{f: f, header: h, offsets: offsets}
	if h.MaxDepth > 254 && overflowPath != "" {
		if of, err := os.Open(overflowPath); err == nil {
			y.overflow = of
		}
	}
	return y, nil
}

func (y *ykFile) Close() error {
	if y.overflow != nil {
		y.overflow.Close()
	}
	return y.f.Close()
}

// combinedIndex maps (kkIndex, zindex) to the YK file's flat address
// space: each kk_index owns a zoneSize-wide slice, ordered by kk_index.
// zoneSize is the encoding row's Size, which does not itself depend on
// kk_index, so every zone is the same width and this concatenation is
// well-defined.
func combinedIndex(kkIndex int, zoneSize, zindex int64) int64 {
	return int64(kkIndex)*zoneSize + zindex
}

// Score fetches the raw score byte for a (kk_index, zindex) address.
func (y *ykFile) Score(dec *compress.Decompressor, buffers *Buffers, kkIndex int, zoneSize, zindex int64) (byte, error) {
	combined := combinedIndex(kkIndex, zoneSize, zindex)
	blockSize := int64(y.header.BlockSize)
	blockIdx := combined / blockSize
	if blockIdx < 0 || int(blockIdx) >= len(y.offsets)-1 {
		return 0, fmt.Errorf("store: yk combined index %d out of range", combined)
	}
	start, end := y.offsets[blockIdx], y.offsets[blockIdx+1]
	if end < start {
		return 0, fmt.Errorf("store: corrupt yk offset table at block %d", blockIdx)
	}

	compressed := buffers.compressedBuf(int(end - start))
	if _, err := y.f.ReadAt(compressed, start); err != nil {
		return 0, fmt.Errorf("store: reading yk block %d: %w", blockIdx, err)
	}

	method, err := compress.MethodFromYKArchiveID(int(y.header.ArchiveID))
	if err != nil {
		return 0, err
	}

	block := buffers.blockBuf(int(blockSize))
	n, err := dec.Decompress(method, compressed, block)
	if err != nil {
		return 0, fmt.Errorf("store: decompressing yk block %d: %w", blockIdx, err)
	}
	off := int(combined % blockSize)
	if off >= n {
		return 0, fmt.Errorf("store: yk combined index %d maps past decompressed block", combined)
	}
	return block[off], nil
}

// HighDTZ binary-searches the .__ overflow file for the exact DTC when
// Score returned 254. ok is false when there is no overflow file
// (max_depth <= 254) or the address is absent from it.
func (y *ykFile) HighDTZ(kkIndex int, zoneSize, zindex int64) (dtc int32, ok bool) {
	if y.overflow == nil {
		return 0, false
	}
	stat, err := y.overflow.Stat()
	if err != nil {
		return 0, false
	}
	count := int(stat.Size() / hDataRecordSize)
	target := combinedIndex(kkIndex, zoneSize, zindex)

	rec := make([]byte, hDataRecordSize)
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		if _, err := y.overflow.ReadAt(rec, int64(mid)*hDataRecordSize); err != nil {
			return 0, false
		}
		rKK := int32(binary.LittleEndian.Uint32(rec[4:8]))
		rOff := int64(binary.LittleEndian.Uint64(rec[8:16]))
		if combinedIndex(int(rKK), zoneSize, rOff) < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= count {
		return 0, false
	}
	if _, err := y.overflow.ReadAt(rec, int64(lo)*hDataRecordSize); err != nil {
		return 0, false
	}
	rKK := int32(binary.LittleEndian.Uint32(rec[4:8]))
	rOff := int64(binary.LittleEndian.Uint64(rec[8:16]))
	if combinedIndex(int(rKK), zoneSize, rOff) == target {
		return int32(binary.LittleEndian.Uint32(rec[0:4])), true
	}
	return 0, false
}
