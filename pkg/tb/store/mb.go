package store

import (
	"fmt"
	"os"

	"github.com/herohde/egtb/pkg/tb/compress"
)

// mbFile is one opened .mb block file (§6.1, §6.2): a header plus its
// num_blocks+1 offset table. Blocks are decompressed on demand and not
// cached beyond the caller-supplied scratch buffer.
type mbFile struct {
	f       *os.File
	header  mbHeader
	offsets []int64
}

func openMBFile(path string) (*mbFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, mbHeaderSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("store: reading mb header %s: %w", path, err)
	}
	h, err := parseMBHeader(buf)
	if err != nil {
		f.Close()
		return nil, err
	}
	offsets, err := readOffsets(f, mbHeaderSize, int(h.NumBlocks)+1)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &mbFile{f: f, header: h, offsets: offsets}, nil
}

func (m *mbFile) Close() error { return m.f.Close() }

// Score fetches the raw score byte at zindex, per §4.6's block-fetch
// algorithm: locate the block, read+decompress it, index within it.
func (m *mbFile) Score(dec *compress.Decompressor, buffers *Buffers, zindex int64) (byte, error) {
	blockSize := int64(m.header.BlockSize)
	blockIdx := zindex / blockSize
	if blockIdx < 0 || int(blockIdx) >= len(m.offsets)-1 {
		return 0, fmt.Errorf("store: zindex %d out of range for %d blocks", zindex, len(m.offsets)-1)
	}
	start, end := m.offsets[blockIdx], m.offsets[blockIdx+1]
	if end < start {
		return 0, fmt.Errorf("store: corrupt mb offset table at block %d", blockIdx)
	}

	compressed := buffers.compressedBuf(int(end - start))
	if _, err := m.f.ReadAt(compressed, start); err != nil {
		return 0, fmt.Errorf("store: reading mb block %d: %w", blockIdx, err)
	}

	block := buffers.blockBuf(int(blockSize))
	method := compress.Method(m.header.CompressionMethod)
	n, err := dec.Decompress(method, compressed, block)
	if err != nil {
		return 0, fmt.Errorf("store: decompressing mb block %d: %w", blockIdx, err)
	}
	off := int(zindex % blockSize)
	if off >= n {
		return 0, fmt.Errorf("store: zindex %d maps past decompressed block (got %d bytes)", zindex, n)
	}
	return block[off], nil
}
