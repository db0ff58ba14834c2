package core

import "sync"

// DefaultHoldTicks is how many samples a press stays held without a repeat.
const DefaultHoldTicks = 4

// InputLatch turns discrete key events into per-tick held/pressed state.
//
// Terminals only report key presses (and auto-repeats), never releases, so a
// press keeps its action held for holdTicks samples. Each auto-repeat
// refreshes the window, which makes a physically held key read as held.
// Release is honored for sources that do report key-up.
//
// Press and Release may be called from a different goroutine than Sample.
type InputLatch struct {
	mu        sync.Mutex
	holdTicks int
	remaining [actionCount]int  // samples left before the action reads released
	pending   [actionCount]bool // press not yet observed by Sample
	wasHeld   [actionCount]bool // held state reported by the previous Sample
}

// NewInputLatch creates a latch. holdTicks < 1 falls back to DefaultHoldTicks.
func NewInputLatch(holdTicks int) *InputLatch {
	if holdTicks < 1 {
		holdTicks = DefaultHoldTicks
	}
	return &InputLatch{holdTicks: holdTicks}
}

// HoldTicks returns the configured hold window.
func (l *InputLatch) HoldTicks() int {
	return l.holdTicks
}

// Press records a key press or auto-repeat for the action.
func (l *InputLatch) Press(a Action) {
	if !a.Valid() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.remaining[a] = l.holdTicks
	l.pending[a] = true
}

// Release marks the action released immediately.
// A press that has not been sampled yet still shows up in the next frame.
func (l *InputLatch) Release(a Action) {
	if !a.Valid() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.remaining[a] = 0
}

// Sample returns the input frame for one tick and advances the hold windows.
func (l *InputLatch) Sample() InputFrame {
	l.mu.Lock()
	defer l.mu.Unlock()

	var frame InputFrame
	for a := ActionNone + 1; a < actionCount; a++ {
		held := l.remaining[a] > 0 || l.pending[a]
		frame.keys[a] = KeyState{
			Held:        held,
			JustPressed: held && !l.wasHeld[a],
		}
		l.wasHeld[a] = held
		l.pending[a] = false
		if l.remaining[a] > 0 {
			l.remaining[a]--
		}
	}
	return frame
}

// Reset releases every action and forgets press edges.
func (l *InputLatch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.remaining = [actionCount]int{}
	l.pending = [actionCount]bool{}
	l.wasHeld = [actionCount]bool{}
}
