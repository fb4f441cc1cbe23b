// Command perft counts leaf nodes reachable from a position at a fixed
// depth, for validating move-generator correctness against known perft
// values.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/meneldor/meneldor/internal/board"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: perft [fen] <depth>")
		os.Exit(2)
	}

	depthArg := args[len(args)-1]
	depth := 0
	if _, err := fmt.Sscanf(depthArg, "%d", &depth); err != nil {
		log.Fatalf("invalid depth %q: %v", depthArg, err)
	}

	fen := board.StartFEN
	if len(args) > 1 {
		fen = strings.Join(args[:len(args)-1], " ")
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatalf("invalid FEN %q: %v", fen, err)
	}

	start := time.Now()
	nodes := board.Perft(pos, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
