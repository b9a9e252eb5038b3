package gate

import "time"

// Token is a single unlock input, one keystroke of the passphrase.
type Token rune

// State is the gate's externally visible state. Evaluation of a full buffer
// happens inside Input, so it never shows up here.
type State int

const (
	// StateLocked accepts tokens into the buffer
	StateLocked State = iota
	// StateUnlocked is terminal; the gate never re-locks within a session
	StateUnlocked
	// StateRejected ignores tokens until the cool-down elapses
	StateRejected
)

// Config holds gate construction parameters.
type Config struct {
	// Sequence is the expected token sequence. An empty sequence leaves the
	// gate unlocked from the start.
	Sequence []Token
	// Cooldown is how long a rejection ignores further input.
	Cooldown time.Duration
	// Now is the clock source; defaults to time.Now.
	Now func() time.Time
}

// Gate matches a fixed-length input sequence before anything else is shown.
// Tokens accumulate in a buffer; when the buffer reaches the expected length
// it is compared element-by-element. A match unlocks for good, a mismatch
// rejects input for the cool-down interval and then starts over with an
// empty buffer.
type Gate struct {
	expected   []Token
	buffer     []Token
	state      State
	rejectedAt time.Time
	cooldown   time.Duration
	now        func() time.Time
}

func New(cfg Config) *Gate {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	g := &Gate{
		expected: cfg.Sequence,
		cooldown: cfg.Cooldown,
		now:      now,
	}
	if len(g.expected) == 0 {
		g.state = StateUnlocked
	}
	return g
}

// NewFromPassphrase builds a gate whose tokens are the runes of the passphrase.
func NewFromPassphrase(passphrase string, cooldown time.Duration) *Gate {
	return New(Config{
		Sequence: Tokens(passphrase),
		Cooldown: cooldown,
	})
}

// Tokens converts a passphrase to its token sequence.
func Tokens(passphrase string) []Token {
	runes := []rune(passphrase)
	tokens := make([]Token, len(runes))
	for i, r := range runes {
		tokens[i] = Token(r)
	}
	return tokens
}

// State returns the current state, expiring a rejection whose cool-down has
// elapsed back to Locked with an empty buffer.
func (g *Gate) State() State {
	if g.state == StateRejected && !g.now().Before(g.rejectedAt.Add(g.cooldown)) {
		g.state = StateLocked
		g.buffer = nil
	}
	return g.state
}

// Input feeds one token into the gate and returns the resulting state.
// Tokens are ignored while rejected or after unlocking.
func (g *Gate) Input(tok Token) State {
	switch g.State() {
	case StateUnlocked, StateRejected:
		return g.state
	}

	g.buffer = append(g.buffer, tok)
	if len(g.buffer) < len(g.expected) {
		return StateLocked
	}

	for i, want := range g.expected {
		if g.buffer[i] != want {
			g.state = StateRejected
			g.rejectedAt = g.now()
			return StateRejected
		}
	}

	g.state = StateUnlocked
	return StateUnlocked
}

// Unlocked reports whether the gate has been passed.
func (g *Gate) Unlocked() bool {
	return g.State() == StateUnlocked
}

// BufferLen returns how many tokens have been entered so far.
func (g *Gate) BufferLen() int {
	g.State()
	return len(g.buffer)
}

// RemainingCooldown returns how much of the rejection cool-down is left,
// zero when not rejected.
func (g *Gate) RemainingCooldown() time.Duration {
	if g.State() != StateRejected {
		return 0
	}
	return g.rejectedAt.Add(g.cooldown).Sub(g.now())
}
