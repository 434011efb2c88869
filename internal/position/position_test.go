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

package position

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avguchenko/bitking/internal/config"
	myLogging "github.com/avguchenko/bitking/internal/logging"
	. "github.com/avguchenko/bitking/internal/types"
)

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	log = myLogging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestPositionCreation(t *testing.T) {
	assert := assert.New(t)

	p, err := NewPositionFen(StartFen)
	assert.NoError(err)
	assert.Equal(SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.pieces[Rook])
	assert.Equal(SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.pieces[Knight])
	assert.Equal(SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.pieces[Bishop])
	assert.Equal(SqD1.Bb()|SqD8.Bb(), p.pieces[Queen])
	assert.Equal(SqE1.Bb()|SqE8.Bb(), p.pieces[King])
	assert.Equal(Rank2_Bb|Rank7_Bb, p.pieces[Pawn])
	assert.Equal(Rank1_Bb|Rank2_Bb, p.players[White])
	assert.Equal(Rank7_Bb|Rank8_Bb, p.players[Black])
	assert.Equal(White, p.NextPlayer())
	assert.Equal(CastlingAny, p.CastlingRights())
	assert.Equal(SqNone, p.GetEnPassantSquare())
	assert.Equal(1, p.MoveNumber())
	assert.Equal(StartFen, p.StringFen())
}

func TestPositionFromFenWithEnPassant(t *testing.T) {
	assert := assert.New(t)

	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	p, err := NewPositionFen(fen)
	assert.NoError(err)
	assert.Equal(Black, p.NextPlayer())
	assert.Equal(SqE3, p.GetEnPassantSquare())
	assert.Equal(fen, p.StringFen())
}

func TestPositionFenRoundTrip(t *testing.T) {
	assert := assert.New(t)

	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"4k3/8/8/8/8/8/4p3/4K3 w - - 0 1",
		"r3k2r/1pp4p/2q5/4P3/2q1Pp2/6R1/p1p2PPP/1R4K1 b kq e3 0 14",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		assert.NoError(err, "fen %s should parse", fen)
		assert.Equal(fen, p.StringFen())
	}
}

func TestPositionFenCanonicalization(t *testing.T) {
	assert := assert.New(t)

	// the half move clock is parsed but not tracked - it is always
	// written as 0
	p, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 17 42")
	assert.NoError(err)
	assert.Equal("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 42", p.StringFen())
	assert.Equal(42, p.MoveNumber())

	// missing optional fields get defaults
	p, err = NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	assert.NoError(err)
	assert.Equal("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", p.StringFen())
}

func TestPositionInvalidFen(t *testing.T) {
	assert := assert.New(t)

	invalid := []string{
		"",                                                         // empty
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP",                       // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR/8",            // 9 ranks
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",             // 9 squares in a rank
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",               // 7 squares in a rank
		"rnbqkbnr/pppptppp/8/8/8/8/PPPPPPPP/RNBQKBNR",              // invalid piece
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // invalid color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w kqKQ - 0 1", // castling out of order
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", // ep target on impossible rank
		"8/8/8/8/8/8/8/8 w - - 0 1",                // no kings
		"kk6/8/8/8/8/8/8/K7 w - - 0 1",             // two black kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", // half move clock not a number
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x", // move number not a number
	}
	for _, fen := range invalid {
		_, err := NewPositionFen(fen)
		assert.Error(err, "fen %s should not parse", fen)
	}
}

func TestPositionEnPassantValidation(t *testing.T) {
	assert := assert.New(t)

	// the en passant target must be empty and on rank 6 when white is
	// to move and on rank 3 when black is to move
	_, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq e6 0 2")
	assert.NoError(err)
	_, err = NewPositionFen("rnbqkbnr/pppp1ppp/4p3/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e6 0 2")
	assert.Error(err) // e6 occupied
	_, err = NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1")
	assert.Error(err) // white to move but target on rank 3
	_, err = NewPositionFen("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e6 0 1")
	assert.Error(err) // black to move but target on rank 6
}

func TestPositionAccessors(t *testing.T) {
	assert := assert.New(t)

	p, _ := NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	assert.Equal(King, p.PieceOn(SqE1))
	assert.Equal(Queen, p.PieceOn(SqF3))
	assert.Equal(Pawn, p.PieceOn(SqD5))
	assert.Equal(PtNone, p.PieceOn(SqD3))

	c, ok := p.ColorOn(SqE1)
	assert.True(ok)
	assert.Equal(White, c)
	c, ok = p.ColorOn(SqE7)
	assert.True(ok)
	assert.Equal(Black, c)
	_, ok = p.ColorOn(SqD3)
	assert.False(ok)

	assert.Equal(SqE1, p.KingSquare(White))
	assert.Equal(SqE8, p.KingSquare(Black))

	assert.True(p.CanCastle(White, true))
	assert.True(p.CanCastle(White, false))
	assert.True(p.CanCastle(Black, true))
	assert.True(p.CanCastle(Black, false))

	assert.Equal(p.players[White]|p.players[Black], p.OccupiedAll())
	assert.Equal(p.players[White]&p.pieces[Knight], p.PiecesBb(White, Knight))
}

func TestPositionCopy(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition()
	// a plain value copy is an independent position
	myCopy := *p
	m := p.NewMove(SqE2, SqE4, PtNone)
	p.DoMove(m)
	assert.NotEqual(myCopy, *p)
	assert.Equal(StartFen, myCopy.StringFen())
	p.UndoMove(m)
	assert.Equal(myCopy, *p)
}

func TestPositionString(t *testing.T) {
	p := NewPosition()
	s := p.String()
	assert.Contains(t, s, StartFen)
	assert.Contains(t, s, "| R |")
}
