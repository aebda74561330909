package store

import (
	"github.com/herohde/egtb/pkg/tb/compress"
	"github.com/seekerror/stdlib/pkg/util/mathx"
)

// Buffers holds one probe Context's growable scratch areas: the
// compressed-block staging buffer and the decompressed-block output
// buffer. Reusing these across probes (instead of allocating per call)
// follows the teacher's search.Buffers scratch-slice pattern
// (pkg/search/buffers.go).
type Buffers struct {
	compressed   []byte
	block        []byte
	Decompressor *compress.Decompressor
}

func NewBuffers() *Buffers {
	return &Buffers{Decompressor: compress.NewDecompressor()}
}

func (b *Buffers) compressedBuf(n int) []byte {
	if cap(b.compressed) < n {
		b.compressed = make([]byte, mathx.Max(n, cap(b.compressed)*2))
	}
	return b.compressed[:n]
}

func (b *Buffers) blockBuf(n int) []byte {
	if cap(b.block) < n {
		b.block = make([]byte, mathx.Max(n, cap(b.block)*2))
	}
	return b.block[:n]
}

func (b *Buffers) Close() {
	b.Decompressor.Close()
}
