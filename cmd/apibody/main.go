// cmd/apibody/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/viethqb/pydbapi-admin/internal/config"
	"github.com/viethqb/pydbapi-admin/internal/ui"
)

func main() {
	// Parse flags
	debug := flag.Bool("debug", false, "Enable debug logging to debug.log")
	flag.Parse()

	// Setup logging if debug enabled
	if *debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Printf("fatal: could not open debug log: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f) // Redirect standard log to the same file
	} else {
		// Log lines would tear the altscreen otherwise.
		log.SetOutput(io.Discard)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	model := ui.NewModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
