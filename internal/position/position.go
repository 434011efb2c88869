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

// Package position represents data structures and functions for a chess
// board and its position. The position is held in bitboards only: one
// occupancy bitboard per color and one per piece type plus a packed
// flag word for en passant target, side to move, castling rights and
// the full move number. Positions round-trip to and from FEN. Moves
// are made and unmade in place - a move value carries everything
// needed to take it back.
//
// Create a new instance with NewPosition() with no parameters to get
// the chess start position.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/avguchenko/bitking/internal/assert"
	"github.com/avguchenko/bitking/internal/attacks"
	myLogging "github.com/avguchenko/bitking/internal/logging"
	. "github.com/avguchenko/bitking/internal/types"
)

var log *logging.Logger

const (
	// StartFen is a string with the fen position for a standard chess game
	StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Position represents a chess board and its state as bit-parallel
// data. It is a plain value - copying it by assignment gives an
// independent position which is the supported way to hand concurrent
// workers their own board. A position is not safe for concurrent use:
// move generation mutates it in place and restores it.
//
// Needs to be created with NewPosition() or NewPositionFen(fen)
type Position struct {
	// one bitboard of occupied squares per color.
	// invariant: players[White] & players[Black] == 0
	players [ColorLength]Bitboard
	// one bitboard of occupied squares per piece type.
	// invariant: pairwise disjoint, exactly one king per color
	pieces [PtLength]Bitboard
	// packed board state:
	//  bit 0..5   en passant target square
	//  bit 6      en passant target present
	//  bit 7      side to move (0 = white)
	//  bit 8..11  castling rights (white K, white Q, black K, black Q)
	//  bit 16..31 full move number (starts at 1, increments after black moves)
	flags uint32
}

//noinspection GoSnakeCaseUsage
const (
	flagsEpSquareMask uint32 = 0x3F
	flagsEpPresent    uint32 = 1 << 6
	flagsNextPlayer   uint32 = 1 << 7
	flagsCastleShift  uint   = 8
	flagsCastleMask   uint32 = 0xF << 8
	flagsLowMask      uint32 = 0xFFFF
	flagsMoveNumShift uint   = 16
)

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewPosition creates a new position.
// When called without an argument the position will have the start position
// When a fen string is given it will create a position based on this fen.
// Additional fens/strings are ignored
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a new position with the given fen string
// as board position.
// It returns nil and an error if the fen was invalid.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	attacks.Pregenerate()
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// NextPlayer returns the next player as Color for the position
func (p *Position) NextPlayer() Color {
	if p.flags&flagsNextPlayer != 0 {
		return Black
	}
	return White
}

// PieceOn returns the piece type on the given square or PtNone for
// an empty square.
func (p *Position) PieceOn(sq Square) PieceType {
	for pt := King; pt < PtNone; pt++ {
		if p.pieces[pt].Has(sq) {
			return pt
		}
	}
	return PtNone
}

// ColorOn returns the color of the piece on the given square. The
// second return value is false for an empty square.
func (p *Position) ColorOn(sq Square) (Color, bool) {
	switch {
	case p.players[White].Has(sq):
		return White, true
	case p.players[Black].Has(sq):
		return Black, true
	}
	return White, false
}

// GetEnPassantSquare returns the en passant target square or SqNone if not set
func (p *Position) GetEnPassantSquare() Square {
	if p.flags&flagsEpPresent == 0 {
		return SqNone
	}
	return Square(p.flags & flagsEpSquareMask)
}

// CastlingRights returns the castling rights of the position
func (p *Position) CastlingRights() CastlingRights {
	return CastlingRights((p.flags & flagsCastleMask) >> flagsCastleShift)
}

// CanCastle returns true if the given color still has the castling
// right for the given board side (true = king side)
func (p *Position) CanCastle(c Color, kingside bool) bool {
	return p.CastlingRights().Has(CastlingSideOf(c, kingside))
}

// MoveNumber returns the full move number of the position. It starts
// at 1 and increments after each black move.
func (p *Position) MoveNumber() int {
	return int(p.flags >> flagsMoveNumShift)
}

// PiecesBb returns the Bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.players[c] & p.pieces[pt]
}

// OccupiedAll returns a Bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.players[White] | p.players[Black]
}

// OccupiedBb returns a Bitboard of all pieces of Color c
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.players[c]
}

// KingSquare returns the current square of the king of color c
func (p *Position) KingSquare(c Color) Square {
	return (p.players[c] & p.pieces[King]).Lsb()
}

// String returns a string representing the position instance. This
// includes the fen and a board matrix.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	return os.String()
}

// StringFen returns a string with the FEN of the current position
func (p *Position) StringFen() string {
	return p.fen()
}

// StringBoard returns a visual matrix of the board and pieces
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			sq := SquareOf(f, Rank8-r)
			pt := p.PieceOn(sq)
			if pt == PtNone {
				os.WriteString(" ")
			} else {
				c, _ := p.ColorOn(sq)
				os.WriteString(pt.CharForColor(c))
			}
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

func (p *Position) putPiece(c Color, pt PieceType, sq Square) {
	if assert.DEBUG {
		assert.Assert(!p.OccupiedAll().Has(sq), "tried to put piece on an occupied square: %s", sq.String())
	}
	p.players[c].PushSquare(sq)
	p.pieces[pt].PushSquare(sq)
}

func (p *Position) removePiece(c Color, pt PieceType, sq Square) {
	if assert.DEBUG {
		assert.Assert(p.players[c].Has(sq), "tried to remove piece from square not occupied by color %s: %s", c.String(), sq.String())
		assert.Assert(p.pieces[pt].Has(sq), "tried to remove %s from square not occupied by it: %s", pt.String(), sq.String())
	}
	p.players[c].PopSquare(sq)
	p.pieces[pt].PopSquare(sq)
}

func (p *Position) movePiece(c Color, pt PieceType, from Square, to Square) {
	p.removePiece(c, pt, from)
	p.putPiece(c, pt, to)
}

func (p *Position) flipNextPlayer() {
	p.flags ^= flagsNextPlayer
}

func (p *Position) setEnPassant(sq Square) {
	p.flags = (p.flags &^ flagsEpSquareMask) | uint32(sq) | flagsEpPresent
}

func (p *Position) clearEnPassant() {
	p.flags &^= flagsEpSquareMask | flagsEpPresent
}

func (p *Position) addCastlingRights(cr CastlingRights) {
	p.flags |= uint32(cr) << flagsCastleShift
}

func (p *Position) removeCastlingRights(cr CastlingRights) {
	p.flags &^= uint32(cr) << flagsCastleShift
}

func (p *Position) setMoveNumber(n int) {
	p.flags = (p.flags & flagsLowMask) | uint32(n)<<flagsMoveNumShift
}

func (p *Position) fen() string {
	var fen strings.Builder
	// pieces
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			sq := SquareOf(f, Rank8-r)
			pt := p.PieceOn(sq)
			if pt == PtNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					fen.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				c, _ := p.ColorOn(sq)
				fen.WriteString(pt.CharForColor(c))
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	// next player
	fen.WriteString(" ")
	fen.WriteString(p.NextPlayer().String())
	// castling
	fen.WriteString(" ")
	fen.WriteString(p.CastlingRights().String())
	// en passant
	fen.WriteString(" ")
	fen.WriteString(p.GetEnPassantSquare().String())
	// half move clock - not tracked, always written as 0
	fen.WriteString(" 0 ")
	// full move number
	fen.WriteString(strconv.Itoa(p.MoveNumber()))

	return fen.String()
}

// regex for first part of fen (position of pieces)
var regexFenPos = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")

// regex for next player color in fen
var regexWorB = regexp.MustCompile("^[w|b]$")

// regex for castling rights in fen
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")

// regex for en passant square in fen
var regexEnPassant = regexp.MustCompile("^([a-h][36]|-)$")

// setupBoard sets up a board based on a fen. This is basically
// the only way to get a valid Position instance.
func (p *Position) setupBoard(fen string) error {

	// we will analyse the fen and only require the initial board layout part.
	// All other parts will have defaults. E.g. next player is white, no
	// castling, etc.
	fen = strings.TrimSpace(fen)
	fenParts := strings.Split(fen, " ")

	if len(fenParts) == 0 || fenParts[0] == "" {
		return errors.New("fen must not be empty")
	}

	// make sure only valid chars are used
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}

	// fen string starts at a8 and runs to h1
	// with / jumping to file A of the next lower rank
	ranks := strings.Split(fenParts[0], "/")
	if len(ranks) != 8 {
		return errors.New("fen position does not have 8 ranks")
	}
	for i, rankStr := range ranks {
		rank := Rank8 - Rank(i)
		file := FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '0' && c <= '8' { // number of empty squares
				file += File(c - '0')
				continue
			}
			pt, color := PieceTypeFromChar(c)
			if pt == PtNone {
				return fmt.Errorf("invalid piece character: %s", string(c))
			}
			if file > FileH {
				return fmt.Errorf("fen rank %s has more than 8 squares", rank.String())
			}
			p.putPiece(color, pt, SquareOf(file, rank))
			file++
		}
		if file != FileLength {
			return fmt.Errorf("fen rank %s does not describe 8 squares", rank.String())
		}
	}

	// set defaults
	p.setMoveNumber(1)

	// everything below is optional as we can apply defaults

	// next player
	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return errors.New("fen next player contains invalid characters")
		}
		if fenParts[1] == "b" {
			p.flags |= flagsNextPlayer
		}
	}

	// castling rights
	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return errors.New("fen castling rights contain invalid characters")
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					p.addCastlingRights(CastlingWhiteOO)
				case 'Q':
					p.addCastlingRights(CastlingWhiteOOO)
				case 'k':
					p.addCastlingRights(CastlingBlackOO)
				case 'q':
					p.addCastlingRights(CastlingBlackOOO)
				}
			}
		}
	}

	// en passant
	if len(fenParts) >= 4 {
		if !regexEnPassant.MatchString(fenParts[3]) {
			return errors.New("fen en passant contains invalid characters")
		}
		if fenParts[3] != "-" {
			p.setEnPassant(MakeSquare(fenParts[3]))
		}
	}

	// half move clock (50 moves rule) - parsed and discarded
	if len(fenParts) >= 5 {
		if _, e := strconv.Atoi(fenParts[4]); e != nil {
			return e
		}
	}

	// full move number
	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil {
			return e
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.setMoveNumber(moveNumber)
	}

	return p.validate()
}

// validate checks the board invariants after a fen setup
func (p *Position) validate() error {
	if p.players[White]&p.players[Black] != BbZero {
		return errors.New("invalid position: white and black occupancy overlap")
	}
	for pt1 := King; pt1 < PtNone; pt1++ {
		for pt2 := pt1 + 1; pt2 < PtNone; pt2++ {
			if p.pieces[pt1]&p.pieces[pt2] != BbZero {
				return fmt.Errorf("invalid position: %s and %s bitboards overlap", pt1.String(), pt2.String())
			}
		}
	}
	for c := White; c <= Black; c++ {
		if (p.players[c] & p.pieces[King]).PopCount() != 1 {
			return fmt.Errorf("invalid position: %s does not have exactly one king", c.String())
		}
	}
	if epSq := p.GetEnPassantSquare(); epSq != SqNone {
		if p.OccupiedAll().Has(epSq) {
			return errors.New("invalid position: en passant target square is not empty")
		}
		// the target sits behind the pawn which just double pushed:
		// rank 6 when white is to move, rank 3 when black is to move
		wantRank := Rank6
		if p.NextPlayer() == Black {
			wantRank = Rank3
		}
		if epSq.RankOf() != wantRank {
			return errors.New("invalid position: en passant target square on wrong rank")
		}
	}
	return nil
}
