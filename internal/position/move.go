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
	"strings"

	. "github.com/avguchenko/bitking/internal/types"
)

// NewMove constructs a move from a source and destination square on
// this position. Capture, capture square (including en passant),
// captured piece type and the castle flag are inferred by inspecting
// the position. The move snapshots the position's low order flags so
// it can be taken back later.
//
// promote gives the piece type a pawn promotes to or PtNone for non
// promotion moves.
//
// Returns MoveEnd if the destination holds a piece of the side to
// move or if a move that looks like an en passant capture is not
// actually one (no opposing pawn on the capture square).
func (p *Position) NewMove(from Square, to Square, promote PieceType) Move {
	us := p.NextPlayer()
	them := us.Flip()

	// capture of own piece can never be a move
	if p.players[us].Has(to) {
		return MoveEnd
	}

	mover := p.PieceOn(from)

	capture := PtNone
	capSq := SqNone
	switch {
	case p.players[them].Has(to):
		capture = p.PieceOn(to)
		capSq = to
	case mover == Pawn && from.FileOf() != to.FileOf():
		// a pawn moving diagonally onto an empty square looks like an
		// en passant capture - the captured pawn stands behind the
		// target square
		capSq = to.To(them.MoveDirection())
		if !p.PiecesBb(them, Pawn).Has(capSq) {
			return MoveEnd
		}
		capture = Pawn
	}

	// a king moving two squares from its origin square is a castle
	kingHome := SqE1
	if us == Black {
		kingHome = SqE8
	}
	castle := mover == King &&
		from == kingHome &&
		from.RankOf() == to.RankOf() &&
		(to.FileOf() == FileG || to.FileOf() == FileC)

	return CreateMove(uint16(p.flags&flagsLowMask), from, to, promote, capture, capSq, castle)
}

// MoveFromString parses a move in pure algebraic notation
// (e.g. e2e4, e7e8q) and synthesizes the full move metadata from this
// position. Upper case file letters are accepted, promotion letters
// are lower case only. Returns MoveEnd for strings which do not
// satisfy the grammar. The returned move is not checked for legality.
func (p *Position) MoveFromString(s string) Move {
	if !IsWellFormedMove(s) {
		return MoveEnd
	}
	s = strings.ToLower(s)
	from := MakeSquare(s[0:2])
	to := MakeSquare(s[2:4])
	promote := PtNone
	if len(s) == 5 {
		promote = PieceTypeFromPromotionChar(s[4])
	}
	return p.NewMove(from, to, promote)
}
