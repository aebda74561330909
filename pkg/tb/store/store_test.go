package store

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/herohde/egtb/pkg/tb/board"
	"github.com/stretchr/testify/assert"
)

// writeMBFile writes a minimal uncompressed .mb/.hi file: the 96-byte
// header, the num_blocks+1 absolute offsets, optionally a parallel
// starting_index array (high-DTZ), then the blocks back to back.
func writeMBFile(t *testing.T, path, basename string, kkIndex int, blockSize uint32, blocks [][]byte, startingIndex []int64) {
	t.Helper()

	n := len(blocks)
	header := make([]byte, mbHeaderSize)
	copy(header[16:32], basename)
	var total int64
	for _, b := range blocks {
		total += int64(len(b))
	}
	binary.LittleEndian.PutUint64(header[32:40], uint64(total))
	binary.LittleEndian.PutUint32(header[40:44], uint32(kkIndex))
	binary.LittleEndian.PutUint32(header[44:48], 100) // max_depth
	binary.LittleEndian.PutUint32(header[48:52], blockSize)
	binary.LittleEndian.PutUint32(header[52:56], uint32(n))
	header[56] = 8
	header[57] = 8
	header[60] = 0 // no compression
	header[63] = highDTZRecordSize

	dataStart := int64(mbHeaderSize + 8*(n+1))
	if startingIndex != nil {
		dataStart += int64(8 * (n + 1))
	}
	offsets := make([]byte, 8*(n+1))
	off := dataStart
	for i, b := range blocks {
		binary.LittleEndian.PutUint64(offsets[8*i:], uint64(off))
		off += int64(len(b))
	}
	binary.LittleEndian.PutUint64(offsets[8*n:], uint64(off))

	out := append([]byte{}, header...)
	out = append(out, offsets...)
	if startingIndex != nil {
		si := make([]byte, 8*(n+1))
		for i, v := range startingIndex {
			binary.LittleEndian.PutUint64(si[8*i:], uint64(v))
		}
		out = append(out, si...)
	}
	for _, b := range blocks {
		out = append(out, b...)
	}

	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, out, 0o644))
}

// writeYKFile writes a minimal uncompressed .yk file: the 4096-byte
// header, the num_blocks+1 absolute offsets, then the blocks.
func writeYKFile(t *testing.T, path string, blockSize uint32, blocks [][]byte) {
	t.Helper()

	n := len(blocks)
	header := make([]byte, ykHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], blockSize)
	binary.LittleEndian.PutUint32(header[4:8], uint32(n))
	header[23] = 4 // NO_COMPRESSION_YK
	binary.LittleEndian.PutUint32(header[32:36], 100)

	dataStart := int64(ykHeaderSize + 8*(n+1))
	offsets := make([]byte, 8*(n+1))
	off := dataStart
	for i, b := range blocks {
		binary.LittleEndian.PutUint64(offsets[8*i:], uint64(off))
		off += int64(len(b))
	}
	binary.LittleEndian.PutUint64(offsets[8*n:], uint64(off))

	out := append([]byte{}, header...)
	out = append(out, offsets...)
	for _, b := range blocks {
		out = append(out, b...)
	}

	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, out, 0o644))
}

func block(size int, fill byte) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestMBScoreFetchesByteAcrossBlocks(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	AddPath(root)

	b0 := block(16, 1)
	b1 := block(16, 2)
	b1[5] = 77
	writeMBFile(t, filepath.Join(root, "kqkr", "kqkr_w_3.mb"), "kqkr", 3, 16, [][]byte{b0, b1}, nil)

	c := NewCaches(Options{})
	defer c.Close()

	key := Key{Basename: "kqkr", KKIndex: 3}
	got, err := c.MBScore(ctx, board.White, key, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, got)

	got, err = c.MBScore(ctx, board.White, key, 21) // block 1, offset 5
	assert.NoError(t, err)
	assert.EqualValues(t, 77, got)
}

func TestMBScoreMissingFile(t *testing.T) {
	ctx := context.Background()
	AddPath(t.TempDir())

	c := NewCaches(Options{})
	defer c.Close()

	_, err := c.MBScore(ctx, board.White, Key{Basename: "krkn", KKIndex: 0}, 0)
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestMBScoreUsesSpecDirectory(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	AddPath(root)

	writeMBFile(t, filepath.Join(root, "kpkp_op1", "kpkp_w_17.mb"), "kpkp", 17, 8, [][]byte{block(8, 42)}, nil)

	c := NewCaches(Options{})
	defer c.Close()

	got, err := c.MBScore(ctx, board.White, Key{Basename: "kpkp", Spec: "op1", KKIndex: 17}, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 42, got)

	// The unspecialized directory does not exist.
	_, err = c.MBScore(ctx, board.White, Key{Basename: "kpkp", KKIndex: 17}, 2)
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestHighDTZLookup(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	AddPath(root)

	// One block with two sorted records: zindex 100 -> 300, 200 -> 412.
	rec := make([]byte, 2*highDTZRecordSize)
	binary.LittleEndian.PutUint64(rec[0:8], 100)
	binary.LittleEndian.PutUint32(rec[8:12], 300)
	binary.LittleEndian.PutUint64(rec[12:20], 200)
	binary.LittleEndian.PutUint32(rec[20:24], 412)
	writeMBFile(t, filepath.Join(root, "kqkr", "kqkr_w_3.hi"), "kqkr", 3, uint32(len(rec)), [][]byte{rec}, []int64{100, 201})

	c := NewCaches(Options{})
	defer c.Close()

	key := Key{Basename: "kqkr", KKIndex: 3}

	score, err := c.HighDTZScore(ctx, board.White, key, 200)
	assert.NoError(t, err)
	assert.EqualValues(t, 412, score)

	// Within range but absent: exactly 254.
	score, err = c.HighDTZScore(ctx, board.White, key, 150)
	assert.NoError(t, err)
	assert.EqualValues(t, 254, score)

	// Out of range: exactly 254.
	score, err = c.HighDTZScore(ctx, board.White, key, 99)
	assert.NoError(t, err)
	assert.EqualValues(t, 254, score)
}

func TestYKScoreCombinedAddress(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	AddPath(root)

	// Zone size 10: address (kk=2, z=3) = 23.
	b0 := block(32, 9)
	b0[23] = 55
	writeYKFile(t, filepath.Join(root, "knkn", "knkn_w.yk"), 32, [][]byte{b0})

	c := NewCaches(Options{})
	defer c.Close()

	got, err := c.YKScore(ctx, board.White, "knkn", 2, 10, 3)
	assert.NoError(t, err)
	assert.EqualValues(t, 55, got)

	_, ok := c.YKHighDTZ(ctx, board.White, "knkn", 2, 10, 3).V()
	assert.False(t, ok)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []int
	c := newLRU[string, int](2, func(v int) { evicted = append(evicted, v) })

	c.Put("a", 1)
	c.Put("b", 2)
	_, ok := c.Get("a") // refresh a
	assert.True(t, ok)
	c.Put("c", 3) // evicts b

	assert.Equal(t, []int{2}, evicted)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestParseMBHeaderRejectsBadGeometry(t *testing.T) {
	buf := make([]byte, mbHeaderSize)
	binary.LittleEndian.PutUint32(buf[48:52], 16)
	buf[56] = 10
	buf[57] = 8
	_, err := parseMBHeader(buf)
	assert.Error(t, err)

	buf[56] = 8
	binary.LittleEndian.PutUint32(buf[48:52], 0)
	_, err = parseMBHeader(buf)
	assert.Error(t, err)
}
