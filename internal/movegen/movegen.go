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

// Package movegen contains functionality to create moves on a chess
// position. Moves are generated on demand: the generator is a hand
// written state machine which yields the next legal move on each call
// without allocating per move. After exhaustion the generator knows
// whether the position is checkmate or stalemate.
package movegen

import (
	"github.com/avguchenko/bitking/internal/assert"
	"github.com/avguchenko/bitking/internal/attacks"
	"github.com/avguchenko/bitking/internal/position"
	. "github.com/avguchenko/bitking/internal/types"
)

// generation modes of the cursor - walked in this order
const (
	modeNormal int8 = iota
	modeCastleKing
	modeCastleQueen
	modeEnd
)

// terminal classification of the generator
const (
	stateOpen int8 = iota // enumeration not finished yet
	stateNormal
	stateCheckmate
	stateStalemate
)

// promotion fan out order for a pawn reaching the last rank
var promoOrder = [4]PieceType{Knight, Bishop, Rook, Queen}

// Movegen is a stateful streaming generator of legal moves for one
// position. It borrows the position exclusively for its lifetime: the
// position is mutated during generation but always restored before a
// move is returned (except in keeping mode). A Movegen must not be
// shared between goroutines.
//
// Create with NewMovegen or initialize a stack value with Init.
type Movegen struct {
	p *position.Position

	// occupancies precomputed at Init
	occSliders Bitboard // all pieces of both colors
	occPawns   Bitboard // occSliders plus the en passant target square
	targetMask Bitboard // ^own pieces
	us         Color
	them       Color

	// cursor
	mode    int8
	pt      PieceType
	from    Square
	targets Bitboard
	promo   int8

	// latches
	done    int8
	hitMove bool
}

// NewMovegen creates a new move generator for the given position
func NewMovegen(p *position.Position) *Movegen {
	mg := &Movegen{}
	mg.Init(p)
	return mg
}

// Init initializes the generator for the given position. Allows
// reusing a stack allocated Movegen value without allocation.
func (mg *Movegen) Init(p *position.Position) {
	attacks.Pregenerate()
	mg.p = p
	mg.us = p.NextPlayer()
	mg.them = mg.us.Flip()
	mg.occSliders = p.OccupiedAll()
	mg.occPawns = mg.occSliders
	if epSq := p.GetEnPassantSquare(); epSq != SqNone {
		// the en passant target counts as occupied for pawn lookups so
		// en passant captures fall out of the normal capture handling
		mg.occPawns.PushSquare(epSq)
	}
	mg.targetMask = ^p.OccupiedBb(mg.us)
	mg.mode = modeNormal
	mg.pt = King
	mg.from = SqA1
	mg.targets = BbZero
	mg.promo = 0
	mg.done = stateOpen
	mg.hitMove = false
}

// NextMove returns the next legal move or MoveEnd when the enumeration
// is exhausted. The position is unchanged when this returns.
func (mg *Movegen) NextMove() Move {
	return mg.next(false)
}

// NextMoveKeeping returns the next legal move like NextMove but leaves
// the position in the state after the move. The caller must undo the
// move on the position before the next call.
func (mg *Movegen) NextMoveKeeping() Move {
	return mg.next(true)
}

// IsCheckmate returns true if the enumeration yielded no move and the
// side to move is in check. Only valid after the enumeration returned
// MoveEnd.
func (mg *Movegen) IsCheckmate() bool {
	if assert.DEBUG {
		assert.Assert(mg.done != stateOpen, "Movegen IsCheckmate: called before enumeration was exhausted")
	}
	return mg.done == stateCheckmate
}

// IsStalemate returns true if the enumeration yielded no move and the
// side to move is not in check. Only valid after the enumeration
// returned MoveEnd.
func (mg *Movegen) IsStalemate() bool {
	if assert.DEBUG {
		assert.Assert(mg.done != stateOpen, "Movegen IsStalemate: called before enumeration was exhausted")
	}
	return mg.done == stateStalemate
}

// PositionIsCheckmate determines if the given position is checkmate
func PositionIsCheckmate(p *position.Position) bool {
	var mg Movegen
	mg.Init(p)
	if mg.NextMove() != MoveEnd {
		return false
	}
	return mg.IsCheckmate()
}

// PositionIsStalemate determines if the given position is stalemate
func PositionIsStalemate(p *position.Position) bool {
	var mg Movegen
	mg.Init(p)
	if mg.NextMove() != MoveEnd {
		return false
	}
	return mg.IsStalemate()
}

// IsLegal tests if the given move is legal on the given position by
// matching it against the enumerated legal moves.
func IsLegal(p *position.Position, m Move) bool {
	if m == MoveEnd {
		return false
	}
	var mg Movegen
	mg.Init(p)
	for next := mg.NextMove(); next != MoveEnd; next = mg.NextMove() {
		if next == m {
			return true
		}
	}
	return false
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

// next advances the state machine to the next legal move. The cursor
// walks the modes normal, castle king side, castle queen side and end.
// In end mode the terminal classification is latched.
func (mg *Movegen) next(keep bool) Move {
	for {
		switch mg.mode {
		case modeNormal:
			if m := mg.nextNormal(keep); m != MoveEnd {
				return m
			}
			mg.mode = modeCastleKing
		case modeCastleKing:
			mg.mode = modeCastleQueen
			if m := mg.castleMove(true, keep); m != MoveEnd {
				return m
			}
		case modeCastleQueen:
			mg.mode = modeEnd
			if m := mg.castleMove(false, keep); m != MoveEnd {
				return m
			}
		default: // modeEnd
			if mg.done == stateOpen {
				switch {
				case mg.hitMove:
					mg.done = stateNormal
				case mg.p.HasCheck():
					mg.done = stateCheckmate
				default:
					mg.done = stateStalemate
				}
			}
			return MoveEnd
		}
	}
}

// nextNormal yields the next legal non castling move. The cursor
// iterates piece types from king to queen, for each piece type the
// own occupied squares and for each square the targets bitboard of
// the piece's pseudo attacks. Pawns reaching the last rank emit the
// same destination four times - once per promotion piece.
func (mg *Movegen) nextNormal(keep bool) Move {
	for mg.pt < PtNone {
		// find the next own piece of the current type and compute its targets
		if mg.targets == BbZero {
			pieces := mg.p.PiecesBb(mg.us, mg.pt)
			for ; mg.from <= SqH8; mg.from++ {
				if !pieces.Has(mg.from) {
					continue
				}
				if t := mg.pseudoTargets(mg.pt, mg.from); t != BbZero {
					mg.targets = t
					mg.promo = 0
					break
				}
			}
			if mg.targets == BbZero {
				mg.pt++
				mg.from = SqA1
				continue
			}
		}

		// pop candidate destinations
		for mg.targets != BbZero {
			to := mg.targets.Lsb()
			var m Move
			if mg.pt == Pawn && (to.RankOf() == Rank8 || to.RankOf() == Rank1) {
				// promotions fan out: the target bit is only cleared
				// after the queen promotion
				m = mg.p.NewMove(mg.from, to, promoOrder[mg.promo])
				mg.promo++
				if mg.promo == int8(len(promoOrder)) {
					mg.promo = 0
					mg.targets.PopLsb()
				}
			} else {
				m = mg.p.NewMove(mg.from, to, PtNone)
				mg.targets.PopLsb()
			}
			if mg.targets == BbZero {
				// square exhausted - move the cursor on before the
				// pending move is yielded so resuming does not visit
				// this square again
				mg.advanceFrom()
			}
			if m == MoveEnd {
				continue
			}
			mg.p.DoMove(m)
			if mg.p.IsAttacked(mg.p.KingSquare(mg.us), mg.them) == BbZero {
				mg.hitMove = true
				if !keep {
					mg.p.UndoMove(m)
				}
				return m
			}
			// move would leave the own king in check
			mg.p.UndoMove(m)
		}
	}
	return MoveEnd
}

// advanceFrom moves the cursor to the next square, wrapping to the
// next piece type at the end of the board
func (mg *Movegen) advanceFrom() {
	mg.from++
	if mg.from > SqH8 {
		mg.pt++
		mg.from = SqA1
	}
}

// castleMove yields the castling move for the given board side if it
// is available: the castling right is still set, no piece stands
// between king and rook and none of the three squares from the king's
// origin through its destination is attacked by the opponent.
func (mg *Movegen) castleMove(kingside bool, keep bool) Move {
	if !mg.p.CanCastle(mg.us, kingside) {
		return MoveEnd
	}
	rank := Rank1
	if mg.us == Black {
		rank = Rank8
	}
	kingFrom := SquareOf(FileE, rank)
	var kingTo, rookSq Square
	if kingside {
		kingTo = SquareOf(FileG, rank)
		rookSq = SquareOf(FileH, rank)
	} else {
		kingTo = SquareOf(FileC, rank)
		rookSq = SquareOf(FileA, rank)
	}
	// rights without the pieces on their squares can occur on hand
	// crafted positions - treat as unavailable
	if !mg.p.PiecesBb(mg.us, King).Has(kingFrom) || !mg.p.PiecesBb(mg.us, Rook).Has(rookSq) {
		return MoveEnd
	}
	// no piece between king and castling rook
	if Intermediate(kingFrom, rookSq)&mg.occSliders != BbZero {
		return MoveEnd
	}
	// the king must not castle out of, through or into check
	for sq := kingFrom; ; {
		if mg.p.IsAttacked(sq, mg.them) != BbZero {
			return MoveEnd
		}
		if sq == kingTo {
			break
		}
		if kingside {
			sq = sq.To(East)
		} else {
			sq = sq.To(West)
		}
	}
	m := mg.p.NewMove(kingFrom, kingTo, PtNone)
	mg.hitMove = true
	if keep {
		mg.p.DoMove(m)
	}
	return m
}

// pseudoTargets returns the pseudo attack mask of the piece type on
// the square intersected with the non own squares
func (mg *Movegen) pseudoTargets(pt PieceType, sq Square) Bitboard {
	var t Bitboard
	switch pt {
	case King:
		t = attacks.KingAttacks(sq)
	case Pawn:
		t = attacks.PawnMoves(mg.us, sq, mg.occPawns)
	case Knight:
		t = attacks.KnightAttacks(sq)
	case Rook:
		t = attacks.RookAttacks(sq, mg.occSliders)
	case Bishop:
		t = attacks.BishopAttacks(sq, mg.occSliders)
	case Queen:
		t = attacks.QueenAttacks(sq, mg.occSliders)
	}
	return t & mg.targetMask
}
