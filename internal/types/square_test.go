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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareValid(t *testing.T) {
	assert.True(t, SqA1.IsValid())
	assert.True(t, SqH8.IsValid())
	assert.False(t, SqNone.IsValid())
	assert.False(t, Square(64).IsValid())
	assert.False(t, Square(255).IsValid())
}

func TestSquareFileRank(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FileA, SqA1.FileOf())
	assert.Equal(Rank1, SqA1.RankOf())
	assert.Equal(FileH, SqH8.FileOf())
	assert.Equal(Rank8, SqH8.RankOf())
	assert.Equal(FileE, SqE4.FileOf())
	assert.Equal(Rank4, SqE4.RankOf())
}

func TestSquareOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqA1, SquareOf(FileA, Rank1))
	assert.Equal(SqH8, SquareOf(FileH, Rank8))
	assert.Equal(SqE4, SquareOf(FileE, Rank4))
	assert.Equal(SqNone, SquareOf(FileNone, Rank4))
	assert.Equal(SqNone, SquareOf(FileE, RankNone))
}

func TestMakeSquare(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqA1, MakeSquare("a1"))
	assert.Equal(SqH8, MakeSquare("h8"))
	assert.Equal(SqE4, MakeSquare("e4"))
	assert.Equal(SqNone, MakeSquare("i1"))
	assert.Equal(SqNone, MakeSquare("a9"))
	assert.Equal(SqNone, MakeSquare("e"))
	assert.Equal(SqNone, MakeSquare("e44"))
}

func TestSquareTo(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqE5, SqE4.To(North))
	assert.Equal(SqE3, SqE4.To(South))
	assert.Equal(SqF4, SqE4.To(East))
	assert.Equal(SqD4, SqE4.To(West))
	assert.Equal(SqF5, SqE4.To(Northeast))
	assert.Equal(SqD3, SqE4.To(Southwest))

	// off the board
	assert.Equal(SqNone, SqA1.To(West))
	assert.Equal(SqNone, SqA1.To(South))
	assert.Equal(SqNone, SqH8.To(East))
	assert.Equal(SqNone, SqH8.To(North))
	assert.Equal(SqNone, SqA4.To(Southwest))
	assert.Equal(SqNone, SqH4.To(Northeast))
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a1", SqA1.String())
	assert.Equal(t, "h8", SqH8.String())
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, "-", SqNone.String())
}
