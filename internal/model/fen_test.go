package model

import (
	"errors"
	"testing"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func TestFENRoundTripStartingPosition(t *testing.T) {
	if got := NewGame().FEN(); got != startFEN {
		t.Fatalf("FEN() = %q, want %q", got, startFEN)
	}

	g, err := NewGameFromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}
	if g.PieceCount() != 32 || g.SideToMove() != White {
		t.Fatalf("loaded %d pieces, %s to move", g.PieceCount(), g.SideToMove())
	}
	for _, name := range []string{"a1", "e1", "d8", "h7", "c2"} {
		want := pieceAt(t, NewGame(), name)
		got := pieceAt(t, g, name)
		if got.Type != want.Type || got.Color != want.Color {
			t.Fatalf("%s: got %s %s, want %s %s", name, got.Color, got.Type, want.Color, want.Type)
		}
	}
}

func TestFENInfersPawnHasMoved(t *testing.T) {
	g, err := NewGameFromFEN("4k3/p7/8/1p6/4P3/8/3P4/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}
	if g.SideToMove() != Black {
		t.Fatalf("side to move = %s, want black", g.SideToMove())
	}

	tests := []struct {
		at    string
		moved bool
	}{
		{"a7", false},
		{"b5", true},
		{"e4", true},
		{"d2", false},
		{"e1", false},
	}
	for _, tt := range tests {
		if p := pieceAt(t, g, tt.at); p.HasMoved != tt.moved {
			t.Fatalf("%s HasMoved = %v, want %v", tt.at, p.HasMoved, tt.moved)
		}
	}

	if v := propose(t, g, "b5", "b3"); v.Reason != ReasonGeometryInvalid {
		t.Fatalf("moved pawn double step: got %v, want %v", v.Reason, ReasonGeometryInvalid)
	}
	if v := propose(t, g, "a7", "a5"); !v.Accepted() {
		t.Fatalf("home pawn double step rejected: %v", v.Reason)
	}
	if got, want := g.FEN(), "4k3/8/8/pp6/4P3/8/3P4/4K3 w - - 0 1"; got != want {
		t.Fatalf("FEN() = %q, want %q", got, want)
	}
}

func TestFENRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"garbage", "not a fen"},
		{"two white kings", "4k3/8/8/8/8/8/8/K3K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BoardFromFEN(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("BoardFromFEN(%q) error = %v, want %v", tt.fen, err, ErrInvalidFEN)
			}
		})
	}
}
