// Package registry keeps the playable variants of the game.
// Variants register a factory in init(), so the platform and the CLI can
// list and create them by ID without importing each rule set directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the platform drives: pure simulation advanced one frame at a
// time. Games never touch the terminal; the platform maps keys to actions,
// owns the clock and paints the Screen.
type Game interface {
	// ID returns the variant identifier used on the command line and in the
	// session journal (e.g. "tetris", "tetris_classic").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new session. Called once before the first Step.
	// The seed in cfg fixes the piece sequence.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score, line count and status flags.
	State() core.GameState
}

// Inspector is implemented by games that can describe their full state,
// used by the debug footer and headless replays.
type Inspector interface {
	DebugState() string
	Board() string
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet Reset, game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a variant. Panics if the ID is empty or already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
