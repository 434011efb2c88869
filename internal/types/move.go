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

package types

import (
	"regexp"
	"strings"
)

// Move is a 64bit unsigned int type for encoding chess moves as a
// primitive data type. Apart from source and destination square the
// move carries everything needed to take it back: the capture
// metadata and a snapshot of the position's low order flag bits
// (en passant target, side to move, castling rights) as they were
// before the move.
//  BITMAP 64-bit
//  0..15   snapshot of the position's low order flags before the move
//  16..21  from square
//  22..27  to square
//  28      is promotion
//  29..31  promotion piece type
//  32      is capture
//  33..35  captured piece type
//  36..41  captured piece square (differs from 'to' on en passant only)
//  42      is castle
type Move uint64

const (
	// MoveEnd marks the end of move enumeration and is returned by
	// parsing and construction functions for inputs which cannot
	// form a move. All bits set so it cannot collide with a real move.
	MoveEnd Move = ^Move(0)
)

//noinspection GoSnakeCaseUsage
const (
	moveFlagsMask  Move = 0xFFFF
	moveFromShift  uint = 16
	moveToShift    uint = 22
	movePromFlag   Move = 1 << 28
	movePromShift  uint = 29
	movePromMask   Move = 7 << movePromShift
	moveCapFlag    Move = 1 << 32
	moveCapPtShift uint = 33
	moveCapPtMask  Move = 7 << moveCapPtShift
	moveCapSqShift uint = 36
	moveCapSqMask  Move = 0x3F << moveCapSqShift
	moveCastleFlag Move = 1 << 42

	moveSquareMask Move = 0x3F
)

// CreateMove returns an encoded Move instance.
// The snapshot is the position's low order flag word prior to the move.
// A promote or capture piece type of PtNone encodes "no promotion" or
// "no capture". The capture square is only read when capture is given.
func CreateMove(snapshot uint16, from Square, to Square, promote PieceType,
	capture PieceType, capSq Square, castle bool) Move {
	m := Move(snapshot) |
		Move(from)<<moveFromShift |
		Move(to)<<moveToShift
	if promote != PtNone {
		m |= movePromFlag | Move(promote)<<movePromShift
	}
	if capture != PtNone {
		m |= moveCapFlag |
			Move(capture)<<moveCapPtShift |
			Move(capSq)<<moveCapSqShift
	}
	if castle {
		m |= moveCastleFlag
	}
	return m
}

// FlagSnapshot returns the position's low order flag word as it was
// before the move was made. Used to roll the position back.
func (m Move) FlagSnapshot() uint16 {
	return uint16(m & moveFlagsMask)
}

// From returns the from-Square of the move
func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveSquareMask)
}

// To returns the to-Square of the move
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// IsPromotion returns true if the move promotes a pawn
func (m Move) IsPromotion() bool {
	return m&movePromFlag != 0
}

// PromotionType returns the PieceType the pawn promotes to.
// Must be ignored when the move is not a promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((m & movePromMask) >> movePromShift)
}

// IsCapture returns true if the move captures a piece
// including en passant captures
func (m Move) IsCapture() bool {
	return m&moveCapFlag != 0
}

// CapturedType returns the PieceType of the captured piece.
// Must be ignored when the move is not a capture.
func (m Move) CapturedType() PieceType {
	return PieceType((m & moveCapPtMask) >> moveCapPtShift)
}

// CaptureSquare returns the square of the captured piece. This is the
// to-Square for all captures except en passant where the captured pawn
// stands behind the target square.
func (m Move) CaptureSquare() Square {
	return Square((m & moveCapSqMask) >> moveCapSqShift)
}

// IsEnPassant returns true if the move is an en passant capture
func (m Move) IsEnPassant() bool {
	return m.IsCapture() && m.CaptureSquare() != m.To()
}

// IsCastle returns true if the move is a castling move
func (m Move) IsCastle() bool {
	return m&moveCastleFlag != 0
}

// IsValid checks if the move has valid squares and is not MoveEnd
func (m Move) IsValid() bool {
	return m != MoveEnd &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.From() != m.To()
}

// String returns the move in pure algebraic notation
// (e.g. e2e4, e7e8q)
func (m Move) String() string {
	if m == MoveEnd {
		return "NoMove"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.IsPromotion() {
		os.WriteString(m.PromotionType().PromotionChar())
	}
	return os.String()
}

// regex for pure algebraic move notation - upper case files are
// accepted on input, promotion letters are lower case only
var regexMove = regexp.MustCompile("^[a-hA-H][1-8][a-hA-H][1-8][nbrq]?$")

// IsWellFormedMove checks if the string satisfies the grammar of pure
// algebraic move notation. It does not check the move for legality.
func IsWellFormedMove(s string) bool {
	return regexMove.MatchString(s)
}
