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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avguchenko/bitking/internal/config"
	"github.com/avguchenko/bitking/internal/position"
	. "github.com/avguchenko/bitking/internal/types"
)

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	code := m.Run()
	os.Exit(code)
}

// collect drains the generator and returns all yielded moves
func collect(p *position.Position) []Move {
	var moves []Move
	var mg Movegen
	mg.Init(p)
	for move := mg.NextMove(); move != MoveEnd; move = mg.NextMove() {
		moves = append(moves, move)
	}
	return moves
}

func TestMovegenStartPosition(t *testing.T) {
	assert := assert.New(t)

	p := position.NewPosition()
	before := *p
	moves := collect(p)
	assert.Equal(20, len(moves))
	// enumeration leaves the position untouched
	assert.Equal(before, *p)
	// no duplicates
	seen := map[Move]bool{}
	for _, m := range moves {
		assert.False(seen[m], "duplicate move %s", m.String())
		seen[m] = true
	}
}

func TestMovegenKiwipete(t *testing.T) {
	p, _ := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := collect(p)
	assert.Equal(t, 48, len(moves))
}

func TestMovegenKeeping(t *testing.T) {
	assert := assert.New(t)

	p := position.NewPosition()
	before := *p
	var mg Movegen
	mg.Init(p)
	count := 0
	for move := mg.NextMoveKeeping(); move != MoveEnd; move = mg.NextMoveKeeping() {
		// the position is left in the post move state
		assert.NotEqual(before, *p)
		p.UndoMove(move)
		assert.Equal(before, *p)
		count++
	}
	assert.Equal(20, count)
}

func TestMovegenWrongSideToMove(t *testing.T) {
	assert := assert.New(t)

	// after e2e4 it is black's turn - g1f3 is not legal, e7e5 is
	p, _ := position.NewPositionFen("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.False(IsLegal(p, p.NewMove(SqG1, SqF3, PtNone)))

	e7e5 := p.MoveFromString("e7e5")
	assert.True(IsLegal(p, e7e5))
	p.DoMove(e7e5)
	assert.Equal(SqE6, p.GetEnPassantSquare())
}

func TestMovegenKingMovesOnly(t *testing.T) {
	assert := assert.New(t)

	// the black pawn on e2 guards d1 and f1 - the white king may go to
	// d2, f2 or capture on e2 and is not in check
	p, _ := position.NewPositionFen("4k3/8/8/8/8/8/4p3/4K3 w - - 0 1")
	assert.False(p.HasCheck())
	moves := collect(p)
	assert.Equal(3, len(moves))
	want := map[string]bool{"e1d2": true, "e1e2": true, "e1f2": true}
	for _, m := range moves {
		assert.True(want[m.String()], "unexpected king move %s", m.String())
	}
}

func TestMovegenEnPassantCapture(t *testing.T) {
	assert := assert.New(t)

	p, _ := position.NewPositionFen("rnbqkbnr/pp1ppppp/8/1Pp5/8/8/P1PPPPPP/RNBQKBNR w KQkq c6 0 3")
	moves := collect(p)
	found := false
	for _, m := range moves {
		if m.String() == "b5c6" {
			assert.True(m.IsEnPassant())
			found = true
		}
	}
	assert.True(found, "en passant capture b5c6 not generated")
}

func TestMovegenPromotions(t *testing.T) {
	assert := assert.New(t)

	// 4 promotion pieces for each of the pawn destinations
	p, _ := position.NewPositionFen("n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1")
	moves := collect(p)
	assert.Equal(24, len(moves))

	// promotion fan out order is knight, bishop, rook, queen
	var order []PieceType
	for _, m := range moves {
		if m.IsPromotion() && m.From() == SqG2 && m.To() == SqG1 {
			order = append(order, m.PromotionType())
		}
	}
	assert.Equal([]PieceType{Knight, Bishop, Rook, Queen}, order)
}

func TestMovegenCastling(t *testing.T) {
	assert := assert.New(t)

	p, _ := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := collect(p)
	castles := 0
	for _, m := range moves {
		if m.IsCastle() {
			castles++
		}
	}
	assert.Equal(2, castles)

	// castling through an attacked square is not allowed:
	// the black rook on e8 attacks e1 - no castling at all while the
	// king would leave through check... the king is in check here so
	// use a rook on f8 guarding f1 instead
	p, _ = position.NewPositionFen("5r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range collect(p) {
		assert.False(m.IsCastle() && m.To() == SqG1, "castling through attacked f1 must not be generated")
	}

	// queen side blocked on b1 still allows king side
	p, _ = position.NewPositionFen("4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1")
	var castleTargets []Square
	for _, m := range collect(p) {
		if m.IsCastle() {
			castleTargets = append(castleTargets, m.To())
		}
	}
	assert.Equal([]Square{SqG1}, castleTargets)
}

func TestMovegenPinnedPiece(t *testing.T) {
	assert := assert.New(t)

	// the knight on e4 is pinned by the rook on e8 and must not move
	p, _ := position.NewPositionFen("4r2k/8/8/8/4N3/8/8/4K3 w - - 0 1")
	for _, m := range collect(p) {
		assert.NotEqual(SqE4, m.From(), "pinned knight must not move")
	}
}

func TestMovegenCheckEvasion(t *testing.T) {
	assert := assert.New(t)

	// every yielded move must leave the own king out of check
	p, _ := position.NewPositionFen("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	assert.True(p.HasCheck())
	for _, m := range collect(p) {
		p.DoMove(m)
		assert.Equal(BbZero, p.IsAttacked(p.KingSquare(White), Black))
		p.UndoMove(m)
	}
}

func TestMovegenCheckmate(t *testing.T) {
	assert := assert.New(t)

	// back rank mate after Ra8
	p, _ := position.NewPositionFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	mate := p.MoveFromString("a1a8")
	assert.True(IsLegal(p, mate))
	p.DoMove(mate)

	var mg Movegen
	mg.Init(p)
	assert.Equal(MoveEnd, mg.NextMove())
	assert.True(mg.IsCheckmate())
	assert.False(mg.IsStalemate())

	assert.True(PositionIsCheckmate(p))
	assert.False(PositionIsStalemate(p))
}

func TestMovegenStalemate(t *testing.T) {
	assert := assert.New(t)

	p, _ := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.False(p.HasCheck())

	var mg Movegen
	mg.Init(p)
	assert.Equal(MoveEnd, mg.NextMove())
	assert.True(mg.IsStalemate())
	assert.False(mg.IsCheckmate())

	assert.True(PositionIsStalemate(p))
	assert.False(PositionIsCheckmate(p))
}

func TestMovegenNotTerminal(t *testing.T) {
	assert := assert.New(t)

	p := position.NewPosition()
	var mg Movegen
	mg.Init(p)
	for mg.NextMove() != MoveEnd {
	}
	assert.False(mg.IsCheckmate())
	assert.False(mg.IsStalemate())
}

func TestIsLegal(t *testing.T) {
	assert := assert.New(t)

	p := position.NewPosition()
	assert.True(IsLegal(p, p.MoveFromString("e2e4")))
	assert.True(IsLegal(p, p.MoveFromString("g1f3")))
	assert.False(IsLegal(p, p.MoveFromString("e2e5")))
	assert.False(IsLegal(p, p.MoveFromString("e1e2")))
	assert.False(IsLegal(p, MoveEnd))

	// a move constructed on another position does not pass
	p2, _ := position.NewPositionFen("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.False(IsLegal(p, p2.NewMove(SqE7, SqE5, PtNone)))
}
