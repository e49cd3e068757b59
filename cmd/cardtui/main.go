package main

import (
	"flag"
	"fmt"
	"os"

	"cardsapi/cmd/cardtui/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "Base URL of the cards API")
	flag.Parse()

	m := ui.NewRootModel(ui.NewClient(*baseURL))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "cardtui:", err)
		os.Exit(1)
	}
}
