package store

import (
	"encoding/binary"
	"fmt"
	"os"
)

// readOffsets reads n consecutive little-endian int64 values starting at
// byte offset start (§6.1's num_blocks+1 block-offset array, and its
// starting_index companion for high-DTZ files).
func readOffsets(f *os.File, start int64, n int) ([]int64, error) {
	buf := make([]byte, 8*n)
	if _, err := f.ReadAt(buf, start); err != nil {
		return nil, fmt.Errorf("store: reading offset table: %w", err)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return out, nil
}
