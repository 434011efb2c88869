//
// bitking - bitboard chess move generation library in Go
//
// MIT License
//
// Copyright (c) 2021-2023 The bitking authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package movegen

import (
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/avguchenko/bitking/internal/position"
	"github.com/avguchenko/bitking/internal/util"
	. "github.com/avguchenko/bitking/internal/types"
)

var out = message.NewPrinter(language.German)

// Perft is a class to test move generation of the chess engine by
// exhaustive enumeration of legal move sequences to a fixed depth.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates a new empty Perft instance
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used when perft has been started in a goroutine to stop
// the currently running perft test
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// StartPerftMulti iterates through the given start to end depths and
// runs a perft for each. If this has been started in a go routine it
// can be stopped via Stop()
func (perft *Perft) StartPerftMulti(fen string, startDepth int, endDepth int) {
	perft.stopFlag = false
	for i := startDepth; i <= endDepth; i++ {
		if perft.stopFlag {
			out.Print("Perft multi depth stopped\n")
			return
		}
		perft.StartPerft(fen, i)
	}
}

// StartPerft runs a perft on the given position to the given depth and
// reports the result and counters.
// If this has been started in a go routine it can be stopped via Stop()
func (perft *Perft) StartPerft(fen string, depth int) {
	perft.stopFlag = false

	// set 1 as minimum
	if depth <= 0 {
		depth = 1
	}

	// prepare
	perft.resetCounter()
	p, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("Perft aborted. Invalid fen: %s\n", fen)
		return
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	// the actual perft call
	start := time.Now()
	result := perft.miniMax(depth, p)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return
	}

	perft.Nodes = result

	out.Printf("Time         : %d ms\n", elapsed.Milliseconds())
	out.Printf("NPS          : %d nps\n", util.Nps(perft.Nodes, elapsed))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

// StartPerftParallel runs a perft on the given position to the given
// depth splitting the root moves over one goroutine each. Every worker
// searches its own copy of the position - a position must never be
// shared between concurrent searches. Only the node count is
// aggregated in this mode.
func (perft *Perft) StartPerftParallel(fen string, depth int) {
	if depth <= 0 {
		depth = 1
	}

	perft.resetCounter()
	p, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("Perft aborted. Invalid fen: %s\n", fen)
		return
	}

	out.Printf("Performing parallel PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()

	// collect the root moves first - the enumeration itself borrows
	// the position exclusively
	var rootMoves []Move
	var mg Movegen
	mg.Init(p)
	for move := mg.NextMove(); move != MoveEnd; move = mg.NextMove() {
		rootMoves = append(rootMoves, move)
	}

	results := make([]uint64, len(rootMoves))
	var g errgroup.Group
	for i, move := range rootMoves {
		i, move := i, move
		g.Go(func() error {
			// each worker gets its own copy of the position
			myPosition := *p
			myPosition.DoMove(move)
			var sub Perft
			results[i] = sub.miniMax(depth-1, &myPosition)
			return nil
		})
	}
	_ = g.Wait()

	var nodes uint64
	for _, n := range results {
		nodes += n
	}
	perft.Nodes = nodes
	elapsed := time.Since(start)

	out.Printf("Time         : %d ms\n", elapsed.Milliseconds())
	out.Printf("NPS          : %d nps\n", util.Nps(perft.Nodes, elapsed))
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished parallel PERFT Test for Depth %d\n\n", depth)
}

func (perft *Perft) miniMax(depth int, p *position.Position) uint64 {
	if depth == 0 {
		return 1
	}
	if perft.stopFlag {
		return 0
	}
	totalNodes := uint64(0)
	// the generator lives on the stack - one per ply
	var mg Movegen
	mg.Init(p)
	for move := mg.NextMoveKeeping(); move != MoveEnd; move = mg.NextMoveKeeping() {
		// the position is left in the state after the move - it must
		// be undone before the next move is requested
		if depth > 1 {
			totalNodes += perft.miniMax(depth-1, p)
		} else {
			totalNodes++
			if move.IsCapture() {
				perft.CaptureCounter++
				if move.IsEnPassant() {
					perft.EnpassantCounter++
				}
			}
			if move.IsCastle() {
				perft.CastleCounter++
			}
			if move.IsPromotion() {
				perft.PromotionCounter++
			}
			if p.HasCheck() {
				perft.CheckCounter++
				if PositionIsCheckmate(p) {
					perft.CheckMateCounter++
				}
			}
		}
		p.UndoMove(move)
	}
	return totalNodes
}

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
