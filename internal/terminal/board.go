package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/benbeisheim/chessvibe-backend/internal/model"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	whitePiece = color.New(color.FgBlue, color.Bold)
	blackPiece = color.New(color.FgRed, color.Bold)
	coordinate = color.New(color.FgCyan)
	hint       = color.New(color.FgGreen)
	failure    = color.New(color.FgRed)
	prompt     = color.New(color.FgYellow)
)

// DisableColorIfPiped turns colour off when f is not a terminal.
func DisableColorIfPiped(f *os.File) {
	if !term.IsTerminal(int(f.Fd())) {
		color.NoColor = true
	}
}

// RenderBoard writes snap as an 8x8 grid, rank 8 on top. Squares listed in
// marks are drawn as '*' when empty.
func RenderBoard(w io.Writer, snap model.Snapshot, marks ...model.Square) {
	var grid [8][8]*model.PieceView
	for i := range snap.Pieces {
		p := &snap.Pieces[i]
		grid[p.Square.Rank][p.Square.File] = p
	}
	marked := make(map[model.Square]bool, len(marks))
	for _, sq := range marks {
		marked[sq] = true
	}

	files := coordinate.Sprint("  a b c d e f g h")
	fmt.Fprintln(w, files)
	for rank := 0; rank < 8; rank++ {
		label := coordinate.Sprint(8 - rank)
		fmt.Fprint(w, label)
		for file := 0; file < 8; file++ {
			fmt.Fprint(w, " ", cell(grid[rank][file], marked[model.Square{File: file, Rank: rank}]))
		}
		fmt.Fprintln(w, " "+label)
	}
	fmt.Fprintln(w, files)
	fmt.Fprintf(w, "%s to move\n", sideName(snap.SideToMove))
}

func cell(p *model.PieceView, marked bool) string {
	switch {
	case p == nil && marked:
		return hint.Sprint("*")
	case p == nil:
		return "."
	case p.Color == model.White:
		return whitePiece.Sprint(p.Letter())
	default:
		return blackPiece.Sprint(p.Letter())
	}
}

func sideName(c model.Color) string {
	if c == model.White {
		return whitePiece.Sprint("White")
	}
	return blackPiece.Sprint("Black")
}

// Prompt is the readline prompt for the side to move.
func Prompt(side model.Color) string {
	return prompt.Sprint("chess ") + sideName(side) + prompt.Sprint(" > ")
}
