package model

import "testing"

func TestPieceGeometry(t *testing.T) {
	tests := []struct {
		name   string
		toMove Color
		pieces []placement
		from   string
		to     string
		want   Reason
	}{
		// pawns
		{"white pawn single step", White, []placement{{Pawn, White, "e2"}}, "e2", "e3", ReasonNone},
		{"white pawn double step", White, []placement{{Pawn, White, "e2"}}, "e2", "e4", ReasonNone},
		{"black pawn single step", Black, []placement{{Pawn, Black, "d7"}}, "d7", "d6", ReasonNone},
		{"black pawn double step", Black, []placement{{Pawn, Black, "d7"}}, "d7", "d5", ReasonNone},
		{"pawn backwards", White, []placement{{Pawn, White, "e3"}}, "e3", "e2", ReasonGeometryInvalid},
		{"pawn triple step", White, []placement{{Pawn, White, "e2"}}, "e2", "e5", ReasonGeometryInvalid},
		{"pawn sideways", White, []placement{{Pawn, White, "e2"}}, "e2", "d2", ReasonGeometryInvalid},
		{"pawn diagonal capture not supported", White, []placement{{Pawn, White, "e4"}, {Pawn, Black, "d5"}}, "e4", "d5", ReasonGeometryInvalid},
		{"pawn blocked ahead", White, []placement{{Pawn, White, "e2"}, {Pawn, Black, "e3"}}, "e2", "e3", ReasonPathBlocked},
		{"pawn double blocked midway", White, []placement{{Pawn, White, "e2"}, {Knight, Black, "e3"}}, "e2", "e4", ReasonPathBlocked},
		{"pawn double blocked at destination", White, []placement{{Pawn, White, "e2"}, {Knight, Black, "e4"}}, "e2", "e4", ReasonPathBlocked},

		// knights
		{"knight 2-1", White, []placement{{Knight, White, "d4"}}, "d4", "e6", ReasonNone},
		{"knight 1-2", White, []placement{{Knight, White, "d4"}}, "d4", "b3", ReasonNone},
		{"knight captures", White, []placement{{Knight, White, "d4"}, {Rook, Black, "f5"}}, "d4", "f5", ReasonNone},
		{"knight straight", White, []placement{{Knight, White, "d4"}}, "d4", "d6", ReasonGeometryInvalid},
		{"knight diagonal", White, []placement{{Knight, White, "d4"}}, "d4", "f6", ReasonGeometryInvalid},

		// bishops
		{"bishop diagonal", White, []placement{{Bishop, White, "c1"}}, "c1", "h6", ReasonNone},
		{"bishop captures", White, []placement{{Bishop, White, "c1"}, {Pawn, Black, "f4"}}, "c1", "f4", ReasonNone},
		{"bishop orthogonal", White, []placement{{Bishop, White, "c1"}}, "c1", "c5", ReasonGeometryInvalid},
		{"bishop blocked", White, []placement{{Bishop, White, "c1"}, {Pawn, Black, "e3"}}, "c1", "g5", ReasonPathBlocked},

		// rooks
		{"rook file", White, []placement{{Rook, White, "a1"}}, "a1", "a8", ReasonNone},
		{"rook rank", White, []placement{{Rook, White, "a1"}}, "a1", "h1", ReasonNone},
		{"rook captures", White, []placement{{Rook, White, "a1"}, {Queen, Black, "a7"}}, "a1", "a7", ReasonNone},
		{"rook diagonal", White, []placement{{Rook, White, "a1"}}, "a1", "c3", ReasonGeometryInvalid},
		{"rook blocked by own piece", White, []placement{{Rook, White, "a1"}, {Pawn, White, "a3"}}, "a1", "a4", ReasonPathBlocked},
		{"rook blocked by opponent", White, []placement{{Rook, White, "a1"}, {Pawn, Black, "d1"}}, "a1", "h1", ReasonPathBlocked},

		// queens
		{"queen diagonal", Black, []placement{{Queen, Black, "d8"}}, "d8", "h4", ReasonNone},
		{"queen file", Black, []placement{{Queen, Black, "d8"}}, "d8", "d1", ReasonNone},
		{"queen knight jump", Black, []placement{{Queen, Black, "d8"}}, "d8", "e6", ReasonGeometryInvalid},
		{"queen blocked", Black, []placement{{Queen, Black, "d8"}, {Pawn, Black, "d7"}}, "d8", "d5", ReasonPathBlocked},

		// kings
		{"king step", White, []placement{{King, White, "e1"}}, "e1", "f2", ReasonNone},
		{"king captures", White, []placement{{King, White, "e1"}, {Queen, Black, "e2"}}, "e1", "e2", ReasonNone},
		{"king two squares", White, []placement{{King, White, "e1"}}, "e1", "g1", ReasonGeometryInvalid},
		{"king null move", White, []placement{{King, White, "e1"}}, "e1", "e1", ReasonGeometryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ids := setup(t, tt.toMove, tt.pieces...)
			if got := g.CanMove(ids[tt.from], sq(t, tt.to)); got != tt.want {
				t.Fatalf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRuleForEveryKind(t *testing.T) {
	for _, kind := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		if RuleFor(kind) == nil {
			t.Fatalf("no rule for %s", kind)
		}
	}
	if RuleFor(PieceType("wizard")) != nil {
		t.Fatalf("unknown kind should have no rule")
	}
}

func TestKnightIgnoresInterveningPieces(t *testing.T) {
	open, openIDs := setup(t, White, placement{Knight, White, "d4"})
	crowded, crowdedIDs := setup(t, White,
		placement{Knight, White, "d4"},
		placement{Pawn, White, "c3"}, placement{Pawn, White, "d3"}, placement{Pawn, White, "e3"},
		placement{Pawn, Black, "c4"}, placement{Pawn, Black, "e4"},
		placement{Pawn, Black, "c5"}, placement{Pawn, Black, "d5"}, placement{Pawn, Black, "e5"},
	)

	for rank := 0; rank < boardSize; rank++ {
		for file := 0; file < boardSize; file++ {
			to := Square{File: file, Rank: rank}
			if _, occupied := crowded.OccupantAt(to); occupied {
				continue
			}
			a := open.CanMove(openIDs["d4"], to)
			b := crowded.CanMove(crowdedIDs["d4"], to)
			if a != b {
				t.Fatalf("knight d4 -> %s: open board %v, crowded board %v", to, a, b)
			}
		}
	}
}

func TestSlidingPiecesBlockedOnEveryIntermediateSquare(t *testing.T) {
	tests := []struct {
		kind    PieceType
		from    string
		to      string
		between []string
	}{
		{Rook, "a1", "a5", []string{"a2", "a3", "a4"}},
		{Rook, "h8", "b8", []string{"g8", "f8", "e8", "d8", "c8"}},
		{Bishop, "c1", "g5", []string{"d2", "e3", "f4"}},
		{Bishop, "h8", "b2", []string{"g7", "f6", "e5", "d4", "c3"}},
		{Queen, "d1", "d6", []string{"d2", "d3", "d4", "d5"}},
		{Queen, "d1", "h5", []string{"e2", "f3", "g4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+tt.from+tt.to, func(t *testing.T) {
			g, ids := setup(t, White, placement{tt.kind, White, tt.from})
			if got := g.CanMove(ids[tt.from], sq(t, tt.to)); got != ReasonNone {
				t.Fatalf("open path: got %v, want legal", got)
			}
			for _, blocker := range tt.between {
				for _, c := range []Color{White, Black} {
					g, ids := setup(t, White, placement{tt.kind, White, tt.from}, placement{Pawn, c, blocker})
					if got := g.CanMove(ids[tt.from], sq(t, tt.to)); got != ReasonPathBlocked {
						t.Fatalf("%s blocker on %s: got %v, want %v", c, blocker, got, ReasonPathBlocked)
					}
				}
			}
		})
	}
}
