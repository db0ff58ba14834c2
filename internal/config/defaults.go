package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default Falling Blocks configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Input: InputConfig{
			HoldTicks: 4,
			Bindings: map[string][]string{
				"rotate_left":  {"e", "z"},
				"rotate_right": {"q", "x", "up"},
				"move_left":    {"a", "left"},
				"move_right":   {"d", "right"},
				"soft_drop":    {"s", "down"},
				"hard_drop":    {"w", " ", "space"},
				"pause":        {"p"},
				"restart":      {"r"},
				"confirm":      {"enter"},
				"back":         {"b", "esc"},
				"quit":         {"ctrl+c"},
			},
		},
		Display: DisplayConfig{
			Cell:   "[]",
			Empty:  " .",
			Border: "gray",
			Colors: map[string]string{
				"I": "cyan",
				"O": "yellow",
				"T": "magenta",
				"S": "green",
				"Z": "red",
				"J": "blue",
				"L": "orange",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlocksYAML
}
