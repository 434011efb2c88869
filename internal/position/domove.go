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
	"github.com/avguchenko/bitking/internal/assert"
	"github.com/avguchenko/bitking/internal/attacks"
	. "github.com/avguchenko/bitking/internal/types"
)

// DoMove commits a move to the position. Due to performance there is
// no check if this move is legal on the current position. Legal check
// needs to be done beforehand or after in case of pseudo legal moves.
// Usually the move will be generated by a move generator and therefore
// be assumed legal anyway.
//
// Precondition: the move was constructed from this exact position -
// its flag snapshot must equal the position's current low order flags.
// This catches a move applied to the wrong position.
func (p *Position) DoMove(m Move) {
	us := p.NextPlayer()
	them := us.Flip()
	from := m.From()
	to := m.To()

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Position DoMove: invalid move %s", m.String())
		assert.Assert(m.FlagSnapshot() == uint16(p.flags&flagsLowMask),
			"Position DoMove: move %s does not belong to this position", m.String())
	}

	doublePush := false
	if m.IsCastle() {
		p.doCastlingMove(us, from, to)
	} else {
		mover := p.PieceOn(from)
		if assert.DEBUG {
			assert.Assert(mover != PtNone, "Position DoMove: no piece on %s for move %s", from.String(), m.String())
			assert.Assert(p.players[us].Has(from), "Position DoMove: piece to move does not belong to next player")
			assert.Assert(!m.IsCapture() || m.CapturedType() != King, "Position DoMove: king cannot be captured")
		}
		if m.IsCapture() {
			p.removePiece(them, m.CapturedType(), m.CaptureSquare())
		}
		// invalidate the corresponding castling right when the move
		// touches a castling square (king or rook leaves, rook captured)
		if cr := GetCastlingRights(from) | GetCastlingRights(to); cr != CastlingNone {
			p.removeCastlingRights(cr)
		}
		p.removePiece(us, mover, from)
		if m.IsPromotion() {
			p.putPiece(us, m.PromotionType(), to)
		} else {
			p.putPiece(us, mover, to)
		}
		doublePush = mover == Pawn && from.FileOf() == to.FileOf() && SquareDistance(from, to) == 2
	}

	p.clearEnPassant()
	if doublePush {
		// the en passant target is the skipped square behind the pawn
		p.setEnPassant(Square((int(from) + int(to)) / 2))
	}
	if us == Black {
		p.setMoveNumber(p.MoveNumber() + 1)
	}
	p.flipNextPlayer()

	if assert.DEBUG {
		assert.Assert(p.validate() == nil, "Position DoMove: invariants violated after move %s: %v", m.String(), p.validate())
	}
}

// UndoMove resets the position to the state before the given move has
// been made. The move must be the last move made on this position.
// Invariant: unmake(make(p, m)) == p bitwise.
func (p *Position) UndoMove(m Move) {
	// restore the low order flags (en passant, side to move, castling
	// rights) from the snapshot the move carries
	p.flags = (p.flags &^ flagsLowMask) | uint32(m.FlagSnapshot())

	us := p.NextPlayer() // the side which made the move
	them := us.Flip()
	from := m.From()
	to := m.To()

	if us == Black {
		p.setMoveNumber(p.MoveNumber() - 1)
	}

	if m.IsCastle() {
		p.movePiece(us, King, to, from)
		rank := from.RankOf()
		if to.FileOf() == FileG {
			p.movePiece(us, Rook, SquareOf(FileF, rank), SquareOf(FileH, rank))
		} else {
			p.movePiece(us, Rook, SquareOf(FileD, rank), SquareOf(FileA, rank))
		}
		return
	}

	if m.IsPromotion() {
		p.removePiece(us, m.PromotionType(), to)
		p.putPiece(us, Pawn, from)
	} else {
		p.movePiece(us, p.PieceOn(to), to, from)
	}
	if m.IsCapture() {
		p.putPiece(them, m.CapturedType(), m.CaptureSquare())
	}
}

func (p *Position) doCastlingMove(us Color, from Square, to Square) {
	if assert.DEBUG {
		assert.Assert(p.PiecesBb(us, King).Has(from), "Position DoMove: castle without king on %s", from.String())
		assert.Assert(from.RankOf() == to.RankOf(), "Position DoMove: castle changes rank")
		assert.Assert(us == White && from.RankOf() == Rank1 || us == Black && from.RankOf() == Rank8,
			"Position DoMove: castle on wrong rank for %s", us.String())
	}
	p.movePiece(us, King, from, to)
	rank := from.RankOf()
	if to.FileOf() == FileG { // king side - rook to file f
		p.movePiece(us, Rook, SquareOf(FileH, rank), SquareOf(FileF, rank))
	} else { // queen side - rook to file d
		p.movePiece(us, Rook, SquareOf(FileA, rank), SquareOf(FileD, rank))
	}
	p.removeCastlingRights(CastlingOf(us))
}

// IsAttacked computes all attackers of the given color to the given
// square and returns them as a bitboard - BbZero means not attacked.
//
// This uses a reverse approach: the target square is treated as a
// piece of each type of the defending color and the resulting attack
// set is intersected with the attacker's pieces of that type.
func (p *Position) IsAttacked(sq Square, by Color) Bitboard {
	occ := p.OccupiedAll()
	defender := by.Flip()
	return (attacks.KingAttacks(sq) & p.pieces[King] & p.players[by]) |
		(attacks.KnightAttacks(sq) & p.pieces[Knight] & p.players[by]) |
		(attacks.PawnCaptures(defender, sq) & p.pieces[Pawn] & p.players[by]) |
		(attacks.RookAttacks(sq, occ) & (p.pieces[Rook] | p.pieces[Queen]) & p.players[by]) |
		(attacks.BishopAttacks(sq, occ) & (p.pieces[Bishop] | p.pieces[Queen]) & p.players[by])
}

// HasCheck returns true if the next player is threatened by a check
// (king is attacked).
func (p *Position) HasCheck() bool {
	us := p.NextPlayer()
	return p.IsAttacked(p.KingSquare(us), us.Flip()) != BbZero
}
