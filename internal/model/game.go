package model

// Game is the move executor. It owns its BoardState and is the only code that
// mutates it. A Game is not safe for concurrent use; hosts serialise calls.
type Game struct {
	board *BoardState
}

// NewGame returns a game in the standard starting position, White to move.
func NewGame() *Game {
	return &Game{board: newBoard()}
}

// NewGameFromBoard takes ownership of b. The caller must not touch b afterwards.
func NewGameFromBoard(b *BoardState) *Game {
	if b.pieces == nil {
		b.pieces = make(map[PieceID]*Piece)
	}
	if b.SideToMove == "" {
		b.SideToMove = White
	}
	return &Game{board: b}
}

func (g *Game) SideToMove() Color {
	return g.board.SideToMove
}

func (g *Game) Snapshot() Snapshot {
	return g.board.Snapshot()
}

func (g *Game) PieceAt(sq Square) (PieceView, bool) {
	return g.board.PieceAt(sq)
}

func (g *Game) Piece(id PieceID) (PieceView, bool) {
	return g.board.Piece(id)
}

func (g *Game) OccupantAt(sq Square) (Color, bool) {
	return g.board.OccupantAt(sq)
}

func (g *Game) PieceCount() int {
	return g.board.Count()
}

// Reset restores the standard starting position.
func (g *Game) Reset() Snapshot {
	g.board = newBoard()
	return g.board.Snapshot()
}

// CanMove evaluates a proposal without committing it.
func (g *Game) CanMove(id PieceID, to Square) Reason {
	_, reason := g.evaluate(id, to)
	return reason
}

func (g *Game) evaluate(id PieceID, to Square) (*Piece, Reason) {
	if !to.InBounds() {
		return nil, ReasonOutOfBounds
	}
	mover, ok := g.board.pieces[id]
	if !ok {
		return nil, ReasonUnknownPiece
	}
	if mover.Color != g.board.SideToMove {
		return mover, ReasonWrongTurn
	}
	if to == mover.Square {
		return mover, ReasonGeometryInvalid
	}
	if c, occupied := g.board.OccupantAt(to); occupied && c == mover.Color {
		return mover, ReasonOwnPieceAtDestination
	}
	rule := RuleFor(mover.Type)
	if rule == nil {
		return mover, ReasonGeometryInvalid
	}
	return mover, rule.Check(mover.view(), to, g.board)
}

// Propose evaluates and, if legal, commits a move in one step. A rejected
// proposal leaves the board untouched.
func (g *Game) Propose(id PieceID, to Square) Verdict {
	mover, reason := g.evaluate(id, to)
	if reason != ReasonNone {
		return rejected(reason)
	}

	before := mover.view()
	captured := g.board.move(mover, to)
	g.switchTurn()

	diff := &MoveDiff{
		Piece:    mover.view(),
		From:     before.Square,
		To:       to,
		Notation: notation(before, to, captured != nil),
	}
	if captured != nil {
		cv := captured.view()
		diff.Captured = &cv
	}
	return Verdict{Outcome: Accepted, Diff: diff}
}

// LegalDestinations lists every square the piece could currently move to.
func (g *Game) LegalDestinations(id PieceID) []Square {
	var out []Square
	for rank := 0; rank < boardSize; rank++ {
		for file := 0; file < boardSize; file++ {
			sq := Square{File: file, Rank: rank}
			if g.CanMove(id, sq) == ReasonNone {
				out = append(out, sq)
			}
		}
	}
	return out
}

func (g *Game) switchTurn() {
	g.board.SideToMove = g.board.SideToMove.Opposite()
}
