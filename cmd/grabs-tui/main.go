// Command grabs-tui is the interactive terminal front end of grabs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HueyNemud/grabs/internal/config"
	"github.com/HueyNemud/grabs/internal/tui"
)

func main() {
	settings, err := config.Load(settingsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// settingsPath returns the default settings file location,
// $HOME/.config/grabs/settings.json.
func settingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(home, ".config", "grabs", "settings.json")
}
