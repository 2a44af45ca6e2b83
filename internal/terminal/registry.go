package terminal

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/benbeisheim/chessvibe-backend/internal/model"
)

var errQuit = errors.New("quit")

// Command is a REPL command with its handler.
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(args []string) error
}

// Registry dispatches input lines against a single local game.
type Registry struct {
	game     *model.Game
	out      io.Writer
	commands map[string]*Command
}

func NewRegistry(game *model.Game, out io.Writer) *Registry {
	r := &Registry{
		game:     game,
		out:      out,
		commands: make(map[string]*Command),
	}

	r.Register(&Command{Name: "move", ShortName: "m", Description: "Move the piece on <from> to <to>", Usage: "move <from> <to>", Handler: r.moveHandler})
	r.Register(&Command{Name: "moves", Description: "Show where the piece on <square> can go", Usage: "moves <square>", Handler: r.movesHandler})
	r.Register(&Command{Name: "board", ShortName: "b", Description: "Print the board", Usage: "board", Handler: r.boardHandler})
	r.Register(&Command{Name: "fen", Description: "Print the position as FEN", Usage: "fen", Handler: r.fenHandler})
	r.Register(&Command{Name: "load", Description: "Replace the position with a FEN", Usage: "load <fen>", Handler: r.loadHandler})
	r.Register(&Command{Name: "reset", Description: "Restore the starting position", Usage: "reset", Handler: r.resetHandler})
	r.Register(&Command{Name: "help", ShortName: "?", Description: "Show available commands", Usage: "help", Handler: r.helpHandler})
	r.Register(&Command{Name: "quit", ShortName: "exit", Description: "Leave the program", Usage: "quit", Handler: func([]string) error { return errQuit }})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Game returns the game commands currently act on.
func (r *Registry) Game() *model.Game {
	return r.game
}

// Execute runs one input line and reports whether the session should end.
// "e2 e4" is shorthand for "move e2 e4".
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmd, exists := r.commands[strings.ToLower(parts[0])]
	args := parts[1:]
	if !exists {
		if _, err := model.ParseSquare(parts[0]); err == nil && len(parts) == 2 {
			cmd, args = r.commands["move"], parts
		} else {
			failure.Fprintf(r.out, "Unknown command: %s\n", parts[0])
			fmt.Fprintln(r.out, "Type 'help' for available commands")
			return false
		}
	}

	err := cmd.Handler(args)
	if errors.Is(err, errQuit) {
		return true
	}
	if err != nil {
		failure.Fprintf(r.out, "Error: %v\n", err)
	}
	return false
}

func (r *Registry) moveHandler(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <from> <to>")
	}
	from, err := model.ParseSquare(args[0])
	if err != nil {
		return err
	}
	to, err := model.ParseSquare(args[1])
	if err != nil {
		return err
	}
	p, ok := r.game.PieceAt(from)
	if !ok {
		return fmt.Errorf("no piece on %s", from)
	}

	verdict := r.game.Propose(p.ID, to)
	if !verdict.Accepted() {
		failure.Fprintf(r.out, "Rejected: %s\n", verdict.Reason)
		return nil
	}
	fmt.Fprintf(r.out, "%s (%s)\n", verdict.Diff.Notation, verdict.Feedback())
	RenderBoard(r.out, r.game.Snapshot())
	return nil
}

func (r *Registry) movesHandler(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: moves <square>")
	}
	at, err := model.ParseSquare(args[0])
	if err != nil {
		return err
	}
	p, ok := r.game.PieceAt(at)
	if !ok {
		return fmt.Errorf("no piece on %s", at)
	}

	dests := r.game.LegalDestinations(p.ID)
	names := make([]string, len(dests))
	for i, sq := range dests {
		names[i] = sq.String()
	}
	if len(names) == 0 {
		fmt.Fprintf(r.out, "%s on %s has no moves\n", p.Type, at)
	} else {
		fmt.Fprintf(r.out, "%s on %s: %s\n", p.Type, at, strings.Join(names, " "))
	}
	RenderBoard(r.out, r.game.Snapshot(), dests...)
	return nil
}

func (r *Registry) boardHandler([]string) error {
	RenderBoard(r.out, r.game.Snapshot())
	return nil
}

func (r *Registry) fenHandler([]string) error {
	fmt.Fprintln(r.out, r.game.FEN())
	return nil
}

func (r *Registry) loadHandler(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <fen>")
	}
	game, err := model.NewGameFromFEN(strings.Join(args, " "))
	if err != nil {
		return err
	}
	r.game = game
	RenderBoard(r.out, r.game.Snapshot())
	return nil
}

func (r *Registry) resetHandler([]string) error {
	RenderBoard(r.out, r.game.Reset())
	return nil
}

func (r *Registry) helpHandler([]string) error {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range r.commands {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(r.out, "Commands:")
	for _, name := range names {
		cmd := r.commands[name]
		fmt.Fprintf(r.out, "  %s %-18s %s\n", coordinate.Sprint(fmt.Sprintf("%-6s", cmd.Name)), cmd.Usage, cmd.Description)
	}
	fmt.Fprintln(r.out, "  <from> <to> is shorthand for move.")
	return nil
}
