package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: blocks).

Default controls:
  A/D, Left/Right  - Move
  E/Z, Q/X/Up      - Rotate left / right
  S/Down           - Soft drop
  W/Space          - Hard drop
  P                - Pause
  R                - Restart (after game over)
  ?                - Toggle full help
  Ctrl+S           - Save a screenshot
  Ctrl+C           - Quit

Bindings are read from ~/.blocks/configs/blocks.yaml, ./configs/blocks.yaml
or --config. Run 'blocks config --default' for a template.

Examples:
  blocks play
  blocks play --seed 42
  blocks play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := blocks.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available games.")
		os.Exit(1)
	}

	opts, cleanup, err := interactiveSetup()
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		cleanup()
		fail("creating game: %v", err)
	}

	runErr := tui.Run(game, runtimeConfig(), opts)

	// Close store before potential exit
	cleanup()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
