package model

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var fromChessType = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

var toChessPiece = map[Color]map[PieceType]chess.Piece{
	White: {
		King: chess.WhiteKing, Queen: chess.WhiteQueen, Rook: chess.WhiteRook,
		Bishop: chess.WhiteBishop, Knight: chess.WhiteKnight, Pawn: chess.WhitePawn,
	},
	Black: {
		King: chess.BlackKing, Queen: chess.BlackQueen, Rook: chess.BlackRook,
		Bishop: chess.BlackBishop, Knight: chess.BlackKnight, Pawn: chess.BlackPawn,
	},
}

// chess.Rank1 is our rank 7; files match.
func fromChessSquare(sq chess.Square) Square {
	return Square{File: int(sq.File()), Rank: boardSize - 1 - int(sq.Rank())}
}

func toChessSquare(sq Square) chess.Square {
	return chess.Square((boardSize-1-sq.Rank)*boardSize + sq.File)
}

func pawnHomeRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// BoardFromFEN builds a board from the placement and side-to-move fields of
// fen. Castling, en passant and the move clocks are ignored. A pawn off its
// home rank is marked as moved.
func BoardFromFEN(fen string) (*BoardState, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	b := NewEmptyBoard()
	if pos.Turn() == chess.Black {
		b.SideToMove = Black
	}

	// Place in square order so piece ids are deterministic.
	squares := pos.Board().SquareMap()
	for i := 0; i < boardSize*boardSize; i++ {
		cp, ok := squares[chess.Square(i)]
		if !ok || cp == chess.NoPiece {
			continue
		}
		t, ok := fromChessType[cp.Type()]
		if !ok {
			return nil, fmt.Errorf("%w: piece %v", ErrInvalidFEN, cp)
		}
		c := White
		if cp.Color() == chess.Black {
			c = Black
		}
		sq := fromChessSquare(chess.Square(i))
		id, err := b.Place(t, c, sq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		if t == Pawn && sq.Rank != pawnHomeRank(c) {
			b.pieces[id].HasMoved = true
		}
	}
	return b, nil
}

// FEN encodes the board. Castling and en passant are always "-".
func (b *BoardState) FEN() string {
	m := make(map[chess.Square]chess.Piece, len(b.pieces))
	for _, p := range b.pieces {
		m[toChessSquare(p.Square)] = toChessPiece[p.Color][p.Type]
	}
	turn := chess.White
	if b.SideToMove == Black {
		turn = chess.Black
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(m).String(), turn)
}

// NewGameFromFEN is a convenience for BoardFromFEN followed by NewGameFromBoard.
func NewGameFromFEN(fen string) (*Game, error) {
	b, err := BoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGameFromBoard(b), nil
}

func (g *Game) FEN() string {
	return g.board.FEN()
}
