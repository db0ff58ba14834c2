// Package tui hosts games in a terminal through Bubble Tea: the fixed-rate
// tick loop, key mapping, the menu and scoreboard screens, and the SSH
// server that serves the same flow to remote terminals.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the simulation rate in ticks per second.
const DefaultTickRate = 60

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// game model whose loop scheduled it, so a loop left over from a previous
// game cannot drive the next one.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh loop generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickInterval returns the delay between ticks, falling back to
// DefaultTickRate for non-positive rates.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends the next tick message.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
