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
	"fmt"

	. "github.com/avguchenko/bitking/internal/types"
)

// Magic bitboards are used to look up attacks of sliding pieces.
// As a reference see https://www.chessprogramming.org/Magic_Bitboards.
// The magic factors are data, not algorithm: they are perfect hash
// multipliers mapping every subset of the relevant occupancy mask of a
// square to an index in that square's region of the attack table.
// Building the table verifies them - two subsets may only share an
// index when their attack sets are equal.

// magic holds all magic bitboard data relevant for a single square
type magic struct {
	mask    Bitboard
	factor  Bitboard
	shift   uint
	attacks []Bitboard // the square's region of the slider table
}

// index calculates the index in the attacks region for the occupancy
//  occ  &= mask
//  occ  *= factor
//  occ >>= shift
func (m *magic) index(occupied Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.factor
	occ >>= m.shift
	return uint(occ)
}

// sliderTableSize is the total number of attack table entries:
// the sum of 1 << popcount(mask) over all rook and bishop squares
// (102400 rook entries plus 5248 bishop entries).
const sliderTableSize = 107648

var (
	// one contiguous attack table - the magic entries per square
	// slice into their region of it
	sliderTable [sliderTableSize]Bitboard

	rookMagics   [SqLength]magic
	bishopMagics [SqLength]magic

	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
)

// RookAttacks returns the attack bitboard of a rook on sq for the
// given occupancy of the board. Occupied squares are included as
// attack targets - own pieces must be masked out by the caller.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.attacks[m.index(occ)]
}

// BishopAttacks returns the attack bitboard of a bishop on sq for the
// given occupancy of the board.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.attacks[m.index(occ)]
}

// QueenAttacks returns the attack bitboard of a queen on sq for the
// given occupancy of the board (rook and bishop attacks combined).
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// ////////////////////
// Initialization
// ////////////////////

func sliderTablesPreCompute() {
	offset := initMagics(0, &rookMagics, &rookFactors, &rookDirections)
	offset = initMagics(offset, &bishopMagics, &bishopFactors, &bishopDirections)
	if offset != sliderTableSize {
		panic(fmt.Sprintf("slider table size mismatch: %d entries filled, expected %d", offset, sliderTableSize))
	}
}

// initMagics fills the table regions of all 64 squares for one slider
// piece starting at the given table offset and returns the offset
// behind the last region.
func initMagics(offset int, magics *[SqLength]magic, factors *[SqLength]Bitboard, directions *[4]Direction) int {
	for sq := SqA1; sq <= SqH8; sq++ {
		// board edges are not considered in the relevant occupancies
		edges := ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.shift = uint(64 - m.mask.PopCount())
		m.factor = factors[sq]
		size := 1 << m.mask.PopCount()
		m.attacks = sliderTable[offset : offset+size]

		// Use the Carry-Rippler trick to enumerate all subsets of the
		// mask and store the true attack bitboard of each subset at its
		// hashed index.
		// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
		b := BbZero
		for {
			reference := slidingAttack(directions, sq, b)
			idx := m.index(b)
			switch {
			case m.attacks[idx] == BbZero:
				m.attacks[idx] = reference
			case m.attacks[idx] != reference:
				panic(fmt.Sprintf("magic factor for square %s does not hash perfectly", sq.String()))
			}
			b = (b - m.mask) & m.mask
			if b == BbZero { // do - while(b)
				break
			}
		}
		offset += size
	}
	return offset
}

// slidingAttack calculates sliding attacks along the given directions
// for the given square and the given board occupation by walking the
// rays. Blockers are included as targets - capture of own pieces is
// filtered later by masking. Only used for precomputing.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for i := 0; i < 4; i++ {
		s := sq.To(directions[i])
		for s != SqNone {
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
			s = s.To(directions[i])
		}
	}
	return attack
}

// Magic factors for the rook squares a1-h8. Precalculated perfect
// hash multipliers - see the package comment above.
var rookFactors = [SqLength]Bitboard{
	0x2080008040002010, 0x40200010004000, 0x100090010200040, 0x2080080010000480,
	0x880040080080102, 0x8200106200042108, 0x410041000408b200, 0x100009a00402100,
	0x5800800020804000, 0x848404010002000, 0x101001820010041, 0x10a0040100420080,
	0x8a02002006001008, 0x926000844110200, 0x8000800200800100, 0x28060001008c2042,
	0x10818002204000, 0x10004020004001, 0x110002008002400, 0x11a020010082040,
	0x2001010008000410, 0x42010100080400, 0x4004040008020110, 0x820000840041,
	0x400080208000, 0x2080200040005000, 0x8000200080100080, 0x4400080180500080,
	0x4900080080040080, 0x4004004480020080, 0x8006000200040108, 0xc481000100006396,
	0x1000400080800020, 0x201004400040, 0x10008010802000, 0x204012000a00,
	0x800400800802, 0x284000200800480, 0x3000403000200, 0x840a6000514,
	0x4080c000228012, 0x10002000444010, 0x620001000808020, 0xc210010010009,
	0x100c001008010100, 0xc10020004008080, 0x20100802040001, 0x808008305420014,
	0xc010800840043080, 0x208401020890100, 0x10b0081020028280, 0x6087001001220900,
	0xc080011000500, 0x9810200040080, 0x2000010882100400, 0x2000050880540200,
	0x800020104200810a, 0x6220250242008016, 0x9180402202900a, 0x40210500100009,
	0x6000814102026, 0x410100080a040013, 0x10405008022d1184, 0x1000009400410822,
}

// Magic factors for the bishop squares a1-h8.
var bishopFactors = [SqLength]Bitboard{
	0x11410121040100, 0x2084820928010, 0xa010208481080040, 0x214240082000610,
	0x4d104000400480, 0x1012010804408, 0x42044101452000c, 0x2844804050104880,
	0x814204290a0a00, 0x10280688224500, 0x1080410101010084, 0x10020a108408004,
	0x2482020210c80080, 0x480104a0040400, 0x411006404200810, 0x1024010908024292,
	0x1004401001011a, 0x810006081220080, 0x1040404206004100, 0x58080000820041ce,
	0x3406000422010890, 0x1a004100520210, 0x202a000048040400, 0x225004441180110,
	0x8064240102240, 0x1424200404010402, 0x1041100041024200, 0x8082002012008200,
	0x1010008104000, 0x8808004000806000, 0x380a000080c400, 0x31040100042d0101,
	0x110109008082220, 0x4010880204201, 0x4006462082100300, 0x4002010040140041,
	0x40090200250880, 0x2010100c40c08040, 0x12800ac01910104, 0x10b20051020100,
	0x210894104828c000, 0x50440220004800, 0x1002011044180800, 0x4220404010410204,
	0x1002204a2020401, 0x21021001000210, 0x4880081009402, 0xc208088c088e0040,
	0x4188464200080, 0x3810440618022200, 0xc020310401040420, 0x2000008208800e0,
	0x4c910240020, 0x425100a8602a0, 0x20c4206a0c030510, 0x4c10010801184000,
	0x200202020a026200, 0x6000004400841080, 0xc14004121082200, 0x400324804208800,
	0x1802200040504100, 0x1820000848488820, 0x8620682a908400, 0x8010600084204240,
}
