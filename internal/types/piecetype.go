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

import "strings"

// PieceType is a set of constants for piece types in chess.
// The values index the per piece type bitboards of a position.
//  King   PieceType = 0
//  Pawn   PieceType = 1
//  Knight PieceType = 2
//  Rook   PieceType = 3
//  Bishop PieceType = 4
//  Queen  PieceType = 5
//  PtNone PieceType = 6 // empty square
type PieceType int8

// PieceType is a set of constants for piece types in chess
const (
	King   PieceType = 0
	Pawn   PieceType = 1
	Knight PieceType = 2
	Rook   PieceType = 3
	Bishop PieceType = 4
	Queen  PieceType = 5
	PtNone PieceType = 6
)

// PtLength number of real piece types
const PtLength = 6

// IsValid checks if pt is a valid piece type
func (pt PieceType) IsValid() bool {
	return pt >= King && pt < PtNone
}

// array of string labels for piece types
var pieceTypeToString = [PtLength + 1]string{"King", "Pawn", "Knight", "Rook", "Bishop", "Queen", "NOPIECE"}

// String returns a string representation of a piece type
func (pt PieceType) String() string {
	return pieceTypeToString[pt]
}

// fen characters of white pieces indexed by piece type
const pieceTypeToChar = "KPNRBQ-"

// Char returns the uppercase (white) fen character of the piece type
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// CharForColor returns the fen character of the piece type for the
// given color. Uppercase for white, lowercase for black.
func (pt PieceType) CharForColor(c Color) string {
	if c == Black {
		return strings.ToLower(pt.Char())
	}
	return pt.Char()
}

// PieceTypeFromChar maps a fen piece letter to piece type and color.
// Returns PtNone and White if the letter is not a valid piece letter.
func PieceTypeFromChar(ch byte) (PieceType, Color) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch = ch - 'a' + 'A'
	}
	index := strings.IndexByte(pieceTypeToChar[:PtLength], ch)
	if index == -1 {
		return PtNone, White
	}
	return PieceType(index), color
}

// promotion letters as used in pure algebraic move notation
const promotionChars = "nbrq"

// promotion piece types in the same order as promotionChars
var promotionTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

// PromotionChar returns the lowercase promotion letter of the piece
// type (n, b, r, q) or the empty string for non promotion types.
func (pt PieceType) PromotionChar() string {
	for i, p := range promotionTypes {
		if p == pt {
			return string(promotionChars[i])
		}
	}
	return ""
}

// PieceTypeFromPromotionChar maps a lowercase promotion letter to its
// piece type. Returns PtNone for anything else.
func PieceTypeFromPromotionChar(ch byte) PieceType {
	index := strings.IndexByte(promotionChars, ch)
	if index == -1 {
		return PtNone
	}
	return promotionTypes[index]
}
