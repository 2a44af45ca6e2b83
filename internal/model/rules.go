package model

// Rule holds the geometry of one piece kind. Turn, bounds and destination
// ownership are checked by the Game before a Rule runs.
type Rule interface {
	Check(mover PieceView, to Square, occ Occupancy) Reason
}

type (
	pawnRule   struct{}
	knightRule struct{}
	bishopRule struct{}
	rookRule   struct{}
	queenRule  struct{}
	kingRule   struct{}
)

var rules = map[PieceType]Rule{
	Pawn:   pawnRule{},
	Knight: knightRule{},
	Bishop: bishopRule{},
	Rook:   rookRule{},
	Queen:  queenRule{},
	King:   kingRule{},
}

// RuleFor returns the movement rule for t, or nil for an unknown kind.
func RuleFor(t PieceType) Rule {
	return rules[t]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func delta(from, to Square) (int, int) {
	return to.File - from.File, to.Rank - from.Rank
}

func (pawnRule) Check(mover PieceView, to Square, occ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	if df != 0 {
		return ReasonGeometryInvalid
	}
	fwd := mover.Color.forward()
	switch dr {
	case fwd:
		if _, occupied := occ.OccupantAt(to); occupied {
			return ReasonPathBlocked
		}
		return ReasonNone
	case 2 * fwd:
		if mover.HasMoved {
			return ReasonGeometryInvalid
		}
		mid := Square{File: mover.Square.File, Rank: mover.Square.Rank + fwd}
		if _, occupied := occ.OccupantAt(mid); occupied {
			return ReasonPathBlocked
		}
		if _, occupied := occ.OccupantAt(to); occupied {
			return ReasonPathBlocked
		}
		return ReasonNone
	}
	return ReasonGeometryInvalid
}

func (knightRule) Check(mover PieceView, to Square, _ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	df, dr = abs(df), abs(dr)
	if (df == 1 && dr == 2) || (df == 2 && dr == 1) {
		return ReasonNone
	}
	return ReasonGeometryInvalid
}

func (bishopRule) Check(mover PieceView, to Square, occ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	if !isDiagonal(df, dr) {
		return ReasonGeometryInvalid
	}
	return scanPath(mover.Square, to, occ)
}

func (rookRule) Check(mover PieceView, to Square, occ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	if !isOrthogonal(df, dr) {
		return ReasonGeometryInvalid
	}
	return scanPath(mover.Square, to, occ)
}

func (queenRule) Check(mover PieceView, to Square, occ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	if !isDiagonal(df, dr) && !isOrthogonal(df, dr) {
		return ReasonGeometryInvalid
	}
	return scanPath(mover.Square, to, occ)
}

func (kingRule) Check(mover PieceView, to Square, _ Occupancy) Reason {
	df, dr := delta(mover.Square, to)
	if abs(df) > 1 || abs(dr) > 1 || (df == 0 && dr == 0) {
		return ReasonGeometryInvalid
	}
	return ReasonNone
}

func isDiagonal(df, dr int) bool {
	return df != 0 && abs(df) == abs(dr)
}

func isOrthogonal(df, dr int) bool {
	return (df == 0) != (dr == 0)
}

// scanPath reports ReasonPathBlocked if any square strictly between from and
// to is occupied. from and to must lie on a common line.
func scanPath(from, to Square, occ Occupancy) Reason {
	step := Square{File: sign(to.File - from.File), Rank: sign(to.Rank - from.Rank)}
	sq := Square{File: from.File + step.File, Rank: from.Rank + step.Rank}
	for sq != to {
		if _, occupied := occ.OccupantAt(sq); occupied {
			return ReasonPathBlocked
		}
		sq = Square{File: sq.File + step.File, Rank: sq.Rank + step.Rank}
	}
	return ReasonNone
}
