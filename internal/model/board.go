package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	boardSize = 8
	maxPieces = 32
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the rank delta of a pawn step for c. Rank 0 is Black's back rank.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// Square addresses a board position. Rank 0 is Black's back rank, rank 7 White's.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (s Square) InBounds() bool {
	return s.File >= 0 && s.File < boardSize && s.Rank >= 0 && s.Rank < boardSize
}

// String returns the algebraic name, e.g. Square{4, 6} is "e2".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, boardSize-s.Rank)
}

func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	f, r := name[0], name[1]
	if f >= 'A' && f <= 'H' {
		f += 'a' - 'A'
	}
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	return Square{File: int(f - 'a'), Rank: boardSize - int(r-'0')}, nil
}

type PieceID int

type Piece struct {
	ID       PieceID
	Type     PieceType
	Color    Color
	Square   Square
	HasMoved bool
}

// PieceView is the read-only copy of a Piece handed out by the board.
type PieceView struct {
	ID       PieceID   `json:"id"`
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Square   Square    `json:"square"`
	HasMoved bool      `json:"hasMoved"`
}

func (p *Piece) view() PieceView {
	return PieceView{ID: p.ID, Type: p.Type, Color: p.Color, Square: p.Square, HasMoved: p.HasMoved}
}

// Letter is the FEN letter of the piece: upper case for White.
func (p PieceView) Letter() string {
	if p.Color == Black {
		return strings.ToLower(p.Type.getPieceNotation())
	}
	return p.Type.getPieceNotation()
}

// Occupancy answers whether a square holds a piece and of which color.
type Occupancy interface {
	OccupantAt(sq Square) (Color, bool)
}

var (
	ErrSquareOutOfBounds = errors.New("square out of bounds")
	ErrSquareOccupied    = errors.New("square already occupied")
	ErrTooManyPieces     = errors.New("too many pieces")
	ErrDuplicateKing     = errors.New("more than one king for color")
	ErrUnknownPieceType  = errors.New("unknown piece type")
	ErrUnknownColor      = errors.New("unknown color")
)

type BoardState struct {
	squares    [boardSize][boardSize]*Piece
	pieces     map[PieceID]*Piece
	nextID     PieceID
	SideToMove Color
}

// NewEmptyBoard returns a board with no pieces and White to move.
func NewEmptyBoard() *BoardState {
	return &BoardState{
		pieces:     make(map[PieceID]*Piece),
		nextID:     1,
		SideToMove: White,
	}
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() *BoardState {
	board := NewEmptyBoard()
	for file := 0; file < boardSize; file++ {
		board.mustPlace(backRank[file], Black, Square{File: file, Rank: 0})
		board.mustPlace(Pawn, Black, Square{File: file, Rank: 1})
	}
	for file := 0; file < boardSize; file++ {
		board.mustPlace(Pawn, White, Square{File: file, Rank: 6})
		board.mustPlace(backRank[file], White, Square{File: file, Rank: 7})
	}
	return board
}

func (b *BoardState) mustPlace(t PieceType, c Color, sq Square) {
	if _, err := b.Place(t, c, sq); err != nil {
		panic(err)
	}
}

// Place puts a new, unmoved piece on an empty square and returns its id.
func (b *BoardState) Place(t PieceType, c Color, sq Square) (PieceID, error) {
	if !sq.InBounds() {
		return 0, fmt.Errorf("place %s %s at %s: %w", c, t, sq, ErrSquareOutOfBounds)
	}
	if t.getPieceNotation() == "" {
		return 0, fmt.Errorf("place %q: %w", t, ErrUnknownPieceType)
	}
	if c != White && c != Black {
		return 0, fmt.Errorf("place %q: %w", c, ErrUnknownColor)
	}
	if b.squares[sq.Rank][sq.File] != nil {
		return 0, fmt.Errorf("place %s %s at %s: %w", c, t, sq, ErrSquareOccupied)
	}
	if b.pieces == nil {
		b.pieces = make(map[PieceID]*Piece)
	}
	if b.nextID == 0 {
		b.nextID = 1
	}
	if len(b.pieces) >= maxPieces {
		return 0, ErrTooManyPieces
	}
	if t == King {
		for _, p := range b.pieces {
			if p.Type == King && p.Color == c {
				return 0, fmt.Errorf("place %s king at %s: %w", c, sq, ErrDuplicateKing)
			}
		}
	}

	piece := &Piece{ID: b.nextID, Type: t, Color: c, Square: sq}
	b.nextID++
	b.pieces[piece.ID] = piece
	b.squares[sq.Rank][sq.File] = piece
	return piece.ID, nil
}

func (b *BoardState) OccupantAt(sq Square) (Color, bool) {
	if !sq.InBounds() {
		return "", false
	}
	p := b.squares[sq.Rank][sq.File]
	if p == nil {
		return "", false
	}
	return p.Color, true
}

func (b *BoardState) PieceAt(sq Square) (PieceView, bool) {
	if !sq.InBounds() {
		return PieceView{}, false
	}
	p := b.squares[sq.Rank][sq.File]
	if p == nil {
		return PieceView{}, false
	}
	return p.view(), true
}

func (b *BoardState) Piece(id PieceID) (PieceView, bool) {
	p, ok := b.pieces[id]
	if !ok {
		return PieceView{}, false
	}
	return p.view(), true
}

func (b *BoardState) Count() int {
	return len(b.pieces)
}

// move relocates a piece, removing whatever stood on the destination.
// Callers must have validated the move.
func (b *BoardState) move(p *Piece, to Square) *Piece {
	captured := b.squares[to.Rank][to.File]
	if captured != nil {
		delete(b.pieces, captured.ID)
	}
	b.squares[p.Square.Rank][p.Square.File] = nil
	b.squares[to.Rank][to.File] = p
	p.Square = to
	p.HasMoved = true
	return captured
}

type Snapshot struct {
	Pieces     []PieceView `json:"pieces"`
	SideToMove Color       `json:"sideToMove"`
}

func (b *BoardState) Snapshot() Snapshot {
	pieces := make([]PieceView, 0, len(b.pieces))
	for _, p := range b.pieces {
		pieces = append(pieces, p.view())
	}
	sort.Slice(pieces, func(i, j int) bool {
		a, c := pieces[i].Square, pieces[j].Square
		if a.Rank != c.Rank {
			return a.Rank < c.Rank
		}
		return a.File < c.File
	})
	return Snapshot{Pieces: pieces, SideToMove: b.SideToMove}
}
