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

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/avguchenko/bitking/internal/types"
)

func TestPregenerateIdempotent(t *testing.T) {
	// tables are already built by init() - further calls are no-ops
	before := KnightAttacks(SqE4)
	Pregenerate()
	Pregenerate()
	assert.Equal(t, before, KnightAttacks(SqE4))
}

func TestKingAttacks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqA2.Bb()|SqB1.Bb()|SqB2.Bb(), KingAttacks(SqA1))
	assert.Equal(SqG7.Bb()|SqG8.Bb()|SqH7.Bb(), KingAttacks(SqH8))
	assert.Equal(
		SqD3.Bb()|SqE3.Bb()|SqF3.Bb()|SqD4.Bb()|SqF4.Bb()|SqD5.Bb()|SqE5.Bb()|SqF5.Bb(),
		KingAttacks(SqE4))
	assert.Equal(8, KingAttacks(SqE4).PopCount())
	assert.Equal(3, KingAttacks(SqA1).PopCount())
	assert.Equal(5, KingAttacks(SqE1).PopCount())
}

func TestKnightAttacks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqB3.Bb()|SqC2.Bb(), KnightAttacks(SqA1))
	assert.Equal(
		SqD2.Bb()|SqF2.Bb()|SqC3.Bb()|SqG3.Bb()|SqC5.Bb()|SqG5.Bb()|SqD6.Bb()|SqF6.Bb(),
		KnightAttacks(SqE4))
	assert.Equal(Bitboard(0x284400442800), KnightAttacks(SqE4))
	assert.Equal(2, KnightAttacks(SqH8).PopCount())
	assert.Equal(3, KnightAttacks(SqB1).PopCount())
}

func TestPawnMovesPushes(t *testing.T) {
	assert := assert.New(t)

	// single and double push from the start rank on an empty board
	assert.Equal(SqE3.Bb()|SqE4.Bb(), PawnMoves(White, SqE2, BbZero))
	assert.Equal(SqE5.Bb(), PawnMoves(White, SqE4, BbZero))
	assert.Equal(SqA6.Bb()|SqA5.Bb(), PawnMoves(Black, SqA7, BbZero))
	assert.Equal(SqH3.Bb(), PawnMoves(Black, SqH4, BbZero))

	// blocked directly ahead - no push at all
	assert.Equal(BbZero, PawnMoves(White, SqE2, SqE3.Bb()))
	assert.Equal(BbZero, PawnMoves(Black, SqA7, SqA6.Bb()))

	// double push square blocked - single push only
	assert.Equal(SqE3.Bb(), PawnMoves(White, SqE2, SqE4.Bb()))
	assert.Equal(SqA6.Bb(), PawnMoves(Black, SqA7, SqA5.Bb()))

	// no double push from other ranks
	assert.Equal(SqE6.Bb(), PawnMoves(White, SqE5, BbZero))
}

func TestPawnMovesCaptures(t *testing.T) {
	assert := assert.New(t)

	// occupied diagonal squares become capture targets
	assert.Equal(SqD3.Bb()|SqE3.Bb()|SqE4.Bb(), PawnMoves(White, SqE2, SqD3.Bb()))
	assert.Equal(SqD3.Bb()|SqF3.Bb(), PawnMoves(White, SqE2, SqD3.Bb()|SqE3.Bb()|SqF3.Bb()))
	assert.Equal(SqB6.Bb()|SqA6.Bb()|SqA5.Bb(), PawnMoves(Black, SqA7, SqB6.Bb()))

	// a pawn on the edge file cannot capture off the board
	assert.Equal(SqA4.Bb(), PawnMoves(White, SqA3, BbZero))
	assert.Equal(SqA1.Bb(), PawnMoves(Black, SqA2, BbZero))
	assert.Equal(SqB1.Bb()|SqA1.Bb(), PawnMoves(Black, SqA2, SqB1.Bb()))
	assert.Equal(SqG3.Bb()|SqH3.Bb(), PawnMoves(White, SqH2, SqG3.Bb()|SqH4.Bb()))
}

func TestPawnCaptures(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqD5.Bb()|SqF5.Bb(), PawnCaptures(White, SqE4))
	assert.Equal(SqD3.Bb()|SqF3.Bb(), PawnCaptures(Black, SqE4))
	assert.Equal(SqB3.Bb(), PawnCaptures(Black, SqA4))
	assert.Equal(SqG6.Bb(), PawnCaptures(White, SqH5))
}

func TestRookAttacks(t *testing.T) {
	assert := assert.New(t)

	// empty board
	assert.Equal((FileA_Bb|Rank1_Bb)&^SqA1.Bb(), RookAttacks(SqA1, BbZero))
	assert.Equal((FileE_Bb|Rank4_Bb)&^SqE4.Bb(), RookAttacks(SqE4, BbZero))

	// blockers are included as targets, squares behind them are not
	occ := SqE7.Bb() | SqB4.Bb()
	assert.Equal(
		SqE5.Bb()|SqE6.Bb()|SqE7.Bb()| // north up to the blocker
			SqE3.Bb()|SqE2.Bb()|SqE1.Bb()| // south
			SqF4.Bb()|SqG4.Bb()|SqH4.Bb()| // east
			SqD4.Bb()|SqC4.Bb()|SqB4.Bb(), // west up to the blocker
		RookAttacks(SqE4, occ))
}

func TestBishopAttacks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(
		SqB2.Bb()|SqA3.Bb()|SqD2.Bb()|SqE3.Bb()|SqF4.Bb()|SqG5.Bb()|SqH6.Bb(),
		BishopAttacks(SqC1, BbZero))

	occ := SqC6.Bb()
	assert.Equal(
		SqD5.Bb()|SqC6.Bb()| // northwest up to the blocker
			SqF5.Bb()|SqG6.Bb()|SqH7.Bb()|
			SqD3.Bb()|SqC2.Bb()|SqB1.Bb()|
			SqF3.Bb()|SqG2.Bb()|SqH1.Bb(),
		BishopAttacks(SqE4, occ))
}

func TestQueenAttacks(t *testing.T) {
	occ := SqE7.Bb() | SqC6.Bb() | SqB4.Bb()
	assert.Equal(t, RookAttacks(SqE4, occ)|BishopAttacks(SqE4, occ), QueenAttacks(SqE4, occ))
}

// verify the magic lookups against the plain ray walk for a selection
// of squares and occupancies
func TestMagicLookupMatchesRayWalk(t *testing.T) {
	assert := assert.New(t)

	squares := []Square{SqA1, SqD1, SqE4, SqB6, SqH8, SqA8, SqG2}
	occupancies := []Bitboard{
		BbZero,
		BbAll,
		Rank2_Bb | Rank7_Bb,
		FileD_Bb | Rank5_Bb,
		SqB2.Bb() | SqG7.Bb() | SqD4.Bb() | SqE5.Bb(),
		0x55AA55AA55AA55AA,
	}
	for _, sq := range squares {
		for _, occ := range occupancies {
			assert.Equal(slidingAttack(&rookDirections, sq, occ), RookAttacks(sq, occ),
				"rook attacks mismatch on %s", sq.String())
			assert.Equal(slidingAttack(&bishopDirections, sq, occ), BishopAttacks(sq, occ),
				"bishop attacks mismatch on %s", sq.String())
		}
	}
}
