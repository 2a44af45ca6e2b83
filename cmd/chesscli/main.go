package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/chessvibe-backend/internal/model"
	"github.com/benbeisheim/chessvibe-backend/internal/terminal"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

func main() {
	fen := flag.String("fen", "", "start from this FEN instead of the standard position")
	noColor := flag.Bool("no-color", false, "disable colored output")
	history := flag.String("history", ".chessvibe_history", "readline history file")
	flag.Parse()

	terminal.DisableColorIfPiped(os.Stdout)
	if *noColor {
		color.NoColor = true
	}

	game := model.NewGame()
	if *fen != "" {
		var err error
		if game, err = model.NewGameFromFEN(*fen); err != nil {
			log.Fatalf("load position: %v", err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          terminal.Prompt(game.SideToMove()),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	registry := terminal.NewRegistry(game, out)
	fmt.Fprintln(out, "Type 'help' for commands")
	terminal.RenderBoard(out, game.Snapshot())

	for {
		rl.SetPrompt(terminal.Prompt(registry.Game().SideToMove()))
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			log.Printf("read input: %v", err)
			break
		}
		if registry.Execute(strings.TrimSpace(line)) {
			break
		}
	}
}
