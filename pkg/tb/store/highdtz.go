package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/herohde/egtb/pkg/tb/compress"
)

// highDTZRecordSize is the per-entry byte width of a high-DTZ block's
// sorted (zindex, score) list: an 8-byte zindex followed by a 4-byte
// score (§6.1's list_element_size is expected to carry this value on
// disk; this is the fallback used if a header reports 0).
const highDTZRecordSize = 12

// highDTZFile is one opened .hi companion file: the same 96-byte header
// as an .mb file, followed by num_blocks+1 offsets and a parallel
// num_blocks+1 starting_index array used to binary-search for the
// block holding a given zindex (§4.6, §6.1).
type highDTZFile struct {
	f             *os.File
	header        mbHeader
	offsets       []int64
	startingIndex []int64
}

func openHighDTZFile(path string) (*highDTZFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, mbHeaderSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("store: reading high-dtz header %s: %w", path, err)
	}
	h, err := parseMBHeader(buf)
	if err != nil {
		f.Close()
		return nil, err
	}
	n := int(h.NumBlocks) + 1
	offsets, err := readOffsets(f, mbHeaderSize, n)
	if err != nil {
		f.Close()
		return nil, err
	}
	startingIndex, err := readOffsets(f, mbHeaderSize+8*int64(n), n)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &highDTZFile{f: f, header: h, offsets: offsets, startingIndex: startingIndex}, nil
}

func (h *highDTZFile) Close() error { return h.f.Close() }

// Lookup implements §4.6's high-DTZ search: a zindex outside the file's
// starting_index range, or one not present in its located block, is not
// an error -- it means the exact value wasn't stored and the MB file's
// boundary byte (254) stands as the final answer.
func (h *highDTZFile) Lookup(dec *compress.Decompressor, buffers *Buffers, zindex int64) (int32, error) {
	n := len(h.startingIndex)
	if n < 2 || zindex < h.startingIndex[0] || zindex > h.startingIndex[n-1] {
		return 254, nil
	}

	blockIdx := sort.Search(n-1, func(i int) bool { return h.startingIndex[i+1] > zindex })
	if blockIdx >= len(h.offsets)-1 {
		return 254, nil
	}

	start, end := h.offsets[blockIdx], h.offsets[blockIdx+1]
	if end < start {
		return 0, fmt.Errorf("store: corrupt high-dtz offset table at block %d", blockIdx)
	}

	compressed := buffers.compressedBuf(int(end - start))
	if _, err := h.f.ReadAt(compressed, start); err != nil {
		return 0, fmt.Errorf("store: reading high-dtz block %d: %w", blockIdx, err)
	}

	block := buffers.blockBuf(int(h.header.BlockSize))
	method := compress.Method(h.header.CompressionMethod)
	m, err := dec.Decompress(method, compressed, block)
	if err != nil {
		return 0, fmt.Errorf("store: decompressing high-dtz block %d: %w", blockIdx, err)
	}
	block = block[:m]

	recSize := int(h.header.ListElementSize)
	if recSize <= 0 {
		recSize = highDTZRecordSize
	}
	count := len(block) / recSize
	idx := sort.Search(count, func(i int) bool {
		rz := int64(binary.LittleEndian.Uint64(block[i*recSize:]))
		return rz >= zindex
	})
	if idx < count {
		rz := int64(binary.LittleEndian.Uint64(block[idx*recSize:]))
		if rz == zindex {
			score := int32(binary.LittleEndian.Uint32(block[idx*recSize+8:]))
			return score, nil
		}
	}
	return 254, nil
}
