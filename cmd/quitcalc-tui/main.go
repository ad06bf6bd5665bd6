package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quitcalc/internal/tui"
)

func main() {
	// An input file is optional; without one the explorer opens the profile form
	inputPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: quitcalc-tui [input-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		inputPath = os.Args[1]
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			fmt.Printf("Error: input file not found: %s\n", inputPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(inputPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
