// Package blocks implements Falling Blocks, a tile-stacking puzzle game.
//
// The Simulation type holds all rules and is driven one fixed tick at a
// time. Game adapts it to the platform's registry.Game interface and draws
// it into a core.Screen.
package blocks

import (
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// GameID is the registry identifier and score table key.
const GameID = "blocks"

// display is the package-level display config, set from the CLI before the
// game is created.
var display = config.DefaultBlocksConfig().Display

// SetDisplay overrides how the playfield is drawn.
func SetDisplay(d config.DisplayConfig) {
	display = d
}

// Game implements registry.Game on top of Simulation.
type Game struct {
	sim     *Simulation
	display config.DisplayConfig
	best    int // best stored score, shown in the HUD
}

// New creates a new game. Call Reset before stepping.
func New() *Game {
	return &Game{
		sim:     NewSimulation(DefaultCatalog(), 0),
		display: display,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Falling Blocks"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.sim.Reseed(cfg.Seed)
	g.sim.Reset()
}

// SetBest sets the best known score for the HUD.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Summary reports lines cleared and pieces locked in the current run.
func (g *Game) Summary() registry.Summary {
	snap := g.sim.Snapshot()
	return registry.Summary{Lines: snap.Lines, Pieces: snap.Pieces}
}

// TakeRedraw reports whether the playfield changed since the last call.
func (g *Game) TakeRedraw() bool {
	return g.sim.TakeRedraw()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.sim.GameOver() {
		g.sim.Reset()
		return core.StepResult{State: g.State()}
	}

	g.sim.Tick(in)

	var events []core.Event
	if ev := g.sim.Events(); len(ev) > 0 {
		events = append(events, ev...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: g.sim.GameOver(),
		Paused:   g.sim.Paused(),
	}
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Snapshot returns the current simulation snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}
