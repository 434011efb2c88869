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

// Package attacks holds the process wide precomputed attack tables:
// leaper tables for king and knight, a pawn move table indexed by the
// occupancy of the squares ahead of the pawn and magic bitboard tables
// for the sliding pieces. The tables are generated exactly once and
// are immutable afterwards. They can be shared by any number of
// concurrent readers without synchronization.
package attacks

import (
	"sync"

	. "github.com/avguchenko/bitking/internal/types"
)

var (
	kingMoves   [SqLength]Bitboard
	knightMoves [SqLength]Bitboard

	// pawnMoves combines pushes and captures of a pawn on a square in
	// one lookup. It is indexed by color, the occupancy of the double
	// push square, the occupancy of the three squares directly ahead
	// (bit 0 = capture west, bit 1 = push, bit 2 = capture east) and
	// the pawn square. A push is included when its square is empty, a
	// capture when its square is occupied. As the occupancy given to
	// the lookup includes the en passant target square en passant
	// captures fall out of the normal capture handling.
	pawnMoves [ColorLength][2][8][SqLength]Bitboard

	pregenOnce sync.Once
)

func init() {
	Pregenerate()
}

// Pregenerate builds all attack tables. It must run before any move
// generation or attack query. It is guarded by a one shot latch and
// therefore idempotent - subsequent calls are no-ops. The package also
// calls this from init() so explicit calls are only needed when the
// package is loaded in an unusual way.
func Pregenerate() {
	pregenOnce.Do(func() {
		leaperTablesPreCompute()
		pawnTablePreCompute()
		sliderTablesPreCompute()
	})
}

// KingAttacks returns the bitboard of squares a king on sq attacks
func KingAttacks(sq Square) Bitboard {
	return kingMoves[sq]
}

// KnightAttacks returns the bitboard of squares a knight on sq attacks
func KnightAttacks(sq Square) Bitboard {
	return knightMoves[sq]
}

// PawnMoves returns the bitboard of pushes and captures of a pawn of
// the given color on the given square. The occupancy must contain all
// pieces of both colors plus the en passant target square if present.
// Capture squares occupied by own pieces must be masked out by the
// caller.
func PawnMoves(c Color, sq Square, occ Bitboard) Bitboard {
	return pawnMoves[c][pawnDoubleBit(c, sq, occ)][pawnAheadBits(c, sq, occ)][sq]
}

// PawnCaptures returns the bitboard of squares a pawn of the given
// color on the given square attacks. This is the table row with all
// three ahead squares occupied: no pushes, both captures.
func PawnCaptures(c Color, sq Square) Bitboard {
	return pawnMoves[c][0][7][sq]
}

// pawnAheadBits extracts the occupancy of the three squares directly
// ahead of the pawn as a 3 bit index (west diagonal, push, east
// diagonal). Shifts beyond the board width drop out as zero bits.
func pawnAheadBits(c Color, sq Square, occ Bitboard) uint {
	if c == White {
		return uint(occ>>(uint(sq)+7)) & 7
	}
	if sq < SqB2 { // no room for a west diagonal shift below b2
		return uint(occ<<(uint(SqB2)-uint(sq))) & 7
	}
	return uint(occ>>(uint(sq)-uint(SqB2))) & 7
}

// pawnDoubleBit extracts the occupancy of the double push square
func pawnDoubleBit(c Color, sq Square, occ Bitboard) uint {
	if c == White {
		return uint(occ>>(uint(sq)+16)) & 1
	}
	if sq < SqA3 {
		return 0
	}
	return uint(occ>>(uint(sq)-16)) & 1
}

// ////////////////////
// Initialization
// ////////////////////

// knight jumps as square offsets - wrap arounds are rejected by the
// square distance check below
var knightSteps = [8]Direction{
	North + North + East,
	North + North + West,
	South + South + East,
	South + South + West,
	East + East + North,
	East + East + South,
	West + West + North,
	West + West + South,
}

func leaperTablesPreCompute() {
	for sq := SqA1; sq <= SqH8; sq++ {
		for _, d := range Directions {
			to := Square(int(sq) + int(d))
			if to.IsValid() && SquareDistance(sq, to) == 1 {
				kingMoves[sq].PushSquare(to)
			}
		}
		for _, d := range knightSteps {
			to := Square(int(sq) + int(d))
			if to.IsValid() && SquareDistance(sq, to) == 2 {
				knightMoves[sq].PushSquare(to)
			}
		}
	}
}

func pawnTablePreCompute() {
	for c := White; c <= Black; c++ {
		moveDir := c.MoveDirection()
		for sq := SqA1; sq <= SqH8; sq++ {
			ahead := sq.To(moveDir)
			for dbl := 0; dbl < 2; dbl++ {
				for occ := 0; occ < 8; occ++ {
					moves := BbZero
					// single push if the square ahead is empty
					if ahead != SqNone && occ&0b010 == 0 {
						moves.PushSquare(ahead)
						// double push only from the pawn start rank when
						// the double push square is empty as well
						if sq.RankOf() == c.PawnStartRank() && dbl == 0 {
							moves.PushSquare(ahead.To(moveDir))
						}
					}
					// captures to occupied diagonal squares
					if ahead != SqNone {
						if west := ahead.To(West); west != SqNone && occ&0b001 != 0 {
							moves.PushSquare(west)
						}
						if east := ahead.To(East); east != SqNone && occ&0b100 != 0 {
							moves.PushSquare(east)
						}
					}
					pawnMoves[c][dbl][occ][sq] = moves
				}
			}
		}
	}
}
