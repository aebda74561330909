// tbprobe scores a position against a set of endgame tablebase roots.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/egtb/pkg/tb/probe"
	"github.com/herohde/egtb/pkg/tb/tbfen"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

var (
	position = flag.String("fen", "", "Position to probe, in FEN notation")
	showInfo = flag.Bool("version", false, "Print version and exit")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: tbprobe [options] [tb-path ...]

TBPROBE scores a chess endgame position against a set of tablebase
root directories, searched in the order given.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *showInfo {
		fmt.Printf("tbprobe %v\n", version)
		return
	}
	if *position == "" {
		flag.Usage()
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		probe.AddPath(path)
	}

	b, err := tbfen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	pctx := probe.NewContext()
	defer pctx.Close()

	score := pctx.Probe(ctx, b)
	fmt.Printf("%v\n", score)
}
