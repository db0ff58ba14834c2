// Package config provides YAML-based configuration loading for the blocks
// game: key bindings, input timing and display styling. Game rules are
// fixed and deliberately absent from the file.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// BlocksConfig contains all configuration for the Falling Blocks game.
type BlocksConfig struct {
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
}

// InputConfig defines key bindings and the held-key window.
type InputConfig struct {
	HoldTicks int                 `yaml:"hold_ticks"`
	Bindings  map[string][]string `yaml:"bindings"` // action name -> key names
}

// DisplayConfig defines how the playfield is drawn.
type DisplayConfig struct {
	Cell   string            `yaml:"cell"`   // glyph for an occupied cell
	Empty  string            `yaml:"empty"`  // glyph for an empty cell
	Border string            `yaml:"border"` // border color name
	Colors map[string]string `yaml:"colors"` // piece name -> color name
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that every binding names a known action and every color
// name resolves.
func (c BlocksConfig) Validate() error {
	if c.Input.HoldTicks < 1 {
		return fmt.Errorf("config: input.hold_ticks must be >= 1, got %d: %w", c.Input.HoldTicks, ErrInvalid)
	}
	if _, err := c.Input.KeyMap(); err != nil {
		return err
	}
	if len([]rune(c.Display.Cell)) != 2 || len([]rune(c.Display.Empty)) != 2 {
		return fmt.Errorf("config: display.cell and display.empty must be two characters wide: %w", ErrInvalid)
	}
	if _, ok := core.ParseColor(c.Display.Border); !ok {
		return fmt.Errorf("config: display.border: unknown color %q: %w", c.Display.Border, ErrInvalid)
	}
	for piece, name := range c.Display.Colors {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("config: display.colors.%s: unknown color %q: %w", piece, name, ErrInvalid)
		}
	}
	return nil
}

// KeyMap resolves the bindings into a key name -> action table.
// A key bound to two different actions is an error.
func (c InputConfig) KeyMap() (map[string]core.Action, error) {
	out := make(map[string]core.Action)

	// Sorted so the reported conflict is stable.
	names := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := core.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("config: input.bindings: unknown action %q: %w", name, ErrInvalid)
		}
		keys := c.Bindings[name]
		if len(keys) == 0 {
			return nil, fmt.Errorf("config: input.bindings.%s: no keys bound: %w", name, ErrInvalid)
		}
		for _, key := range keys {
			if prev, dup := out[key]; dup && prev != action {
				return nil, fmt.Errorf("config: key %q bound to both %s and %s: %w", key, prev, action, ErrInvalid)
			}
			out[key] = action
		}
	}
	return out, nil
}

// PieceColor returns the configured color for a piece, or ColorDefault.
func (d DisplayConfig) PieceColor(piece string) core.Color {
	c, _ := core.ParseColor(d.Colors[piece])
	return c
}

// BorderColor returns the configured border color.
func (d DisplayConfig) BorderColor() core.Color {
	c, _ := core.ParseColor(d.Border)
	return c
}
