package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/herohde/egtb/pkg/tb/board"
)

var (
	pathsMu sync.Mutex
	paths   []string
)

// AddPath registers a directory root to search for tablebase files, in
// order of registration (§5). It is process-global and safe to call
// concurrently, mirroring the teacher's build.Init-style one-shot
// global registration.
func AddPath(path string) {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	paths = append(paths, path)
}

// Paths returns a snapshot of the registered search roots.
func Paths() []string {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// findFile searches every registered root, in order, for root/dir/name
// and returns the first path that exists.
func findFile(dir, name string) (string, bool) {
	for _, root := range Paths() {
		p := filepath.Join(root, dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

// dirName builds the §6.2 per-ending directory name: "{basename}" for
// the unconstrained row, "{basename}_{spec}" for a pawn-file-type or
// bishop-parity specialization.
func dirName(basename, spec string) string {
	if spec == "" {
		return basename
	}
	return basename + "_" + spec
}

func sideLetter(c board.Color) string {
	if c == board.Black {
		return "b"
	}
	return "w"
}

func mbFileName(basename string, side board.Color, kkIndex int) string {
	return fmt.Sprintf("%s_%s_%d.mb", basename, sideLetter(side), kkIndex)
}

func hiFileName(basename string, side board.Color, kkIndex int) string {
	return fmt.Sprintf("%s_%s_%d.hi", basename, sideLetter(side), kkIndex)
}

func ykFileName(basename string, side board.Color) string {
	return fmt.Sprintf("%s_%s.yk", basename, sideLetter(side))
}

func ykOverflowFileName(basename string, side board.Color) string {
	return fmt.Sprintf("%s_%s.__", basename, sideLetter(side))
}
