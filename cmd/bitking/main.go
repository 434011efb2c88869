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

// bitking command line driver. Exposes the small surface external
// collaborators consume: parse a position, list its legal moves, apply
// moves, classify terminal states and run perft tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/avguchenko/bitking/internal/config"
	"github.com/avguchenko/bitking/internal/logging"
	"github.com/avguchenko/bitking/internal/movegen"
	"github.com/avguchenko/bitking/internal/position"
	"github.com/avguchenko/bitking/internal/types"
	"github.com/avguchenko/bitking/internal/version"
)

var out = message.NewPrinter(language.German)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	fen := flag.String("fen", position.StartFen, "fen of the position to operate on")
	perftDepth := flag.Int("perft", 0, "runs perft to the given depth on the position given with -fen")
	parallel := flag.Bool("parallel", false, "splits perft root moves over several goroutines")
	listMoves := flag.Bool("moves", false, "lists all legal moves of the position given with -fen")
	apply := flag.String("apply", "", "space separated moves (e.g. \"e2e4 e7e5\") to apply to the position given with -fen")
	profileFlag := flag.Bool("profile", false, "write a cpu profile to the working directory")
	flag.Parse()

	// print version info and exit
	if *versionInfo {
		printVersionInfo()
		return
	}

	// set config file
	// this needs to be set before config.Setup() is called. Otherwise the default will be used.
	config.ConfFile = *configFile

	// read config file
	config.Setup()

	// set log level from cmd line options overwriting config file or defaults
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	// resetting log level of the standard log - required as most packages
	// include the standard logger as a global var and therefore even before
	// main() is called. These loggers start with the default log level and
	// must be reset to the actual level required.
	log := logging.GetLog()

	if *profileFlag {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	// apply a sequence of moves and print the resulting position
	if *apply != "" {
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			os.Exit(1)
		}
		for _, moveStr := range strings.Fields(*apply) {
			move := p.MoveFromString(moveStr)
			if move == types.MoveEnd || !movegen.IsLegal(p, move) {
				log.Errorf("move %s is not legal on %s", moveStr, p.StringFen())
				os.Exit(1)
			}
			p.DoMove(move)
		}
		out.Println(p.String())
		printTerminalState(p)
		return
	}

	// list legal moves
	if *listMoves {
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			os.Exit(1)
		}
		mg := movegen.NewMovegen(p)
		count := 0
		for move := mg.NextMove(); move != types.MoveEnd; move = mg.NextMove() {
			out.Printf("%s ", move.String())
			count++
		}
		out.Printf("\n%d legal moves\n", count)
		printTerminalState(p)
		return
	}

	// perft
	depth := *perftDepth
	if depth == 0 {
		depth = config.Settings.Perft.Depth
	}
	var perft movegen.Perft
	if *parallel || config.Settings.Perft.Parallel {
		perft.StartPerftParallel(*fen, depth)
	} else {
		perft.StartPerft(*fen, depth)
	}
}

func printTerminalState(p *position.Position) {
	switch {
	case movegen.PositionIsCheckmate(p):
		out.Println("Position is checkmate")
	case movegen.PositionIsStalemate(p):
		out.Println("Position is stalemate")
	case p.HasCheck():
		out.Println("Side to move is in check")
	}
}

func printVersionInfo() {
	fmt.Printf("bitking %s\n", version.Version)
	fmt.Printf("Environment:\n")
	fmt.Printf("  Using GO version %s\n", runtime.Version())
	fmt.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	fmt.Printf("  Number of CPU: %d\n", runtime.NumCPU())
}
