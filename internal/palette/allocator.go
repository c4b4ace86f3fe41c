package palette

import (
	"fmt"
	"log"
	"sync"
)

// defaultPalette is the fixed ordered palette tried before deriving colors.
var defaultPalette = []string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#e15759", // red
	"#76b7b2", // teal
	"#59a14f", // green
	"#edc948", // yellow
}

// goldenAngle spreads derived hues so consecutive overflow colors stay apart.
const goldenAngle = 137.508

// Allocator assigns a stable color per ticker, persisted across sessions.
// Entries are added when a ticker first needs a color and pruned lazily when
// a recomputation finds the ticker gone from the active set.
type Allocator struct {
	mu     sync.Mutex
	store  Store
	colors map[string]string
}

// NewAllocator loads the persisted mapping from store. A read failure is
// logged and treated as an empty mapping; the session continues in-memory.
func NewAllocator(store Store) *Allocator {
	colors, err := store.Load()
	if err != nil {
		log.Printf("[WARN] load color assignments: %v, starting empty", err)
		colors = make(map[string]string)
	}
	return &Allocator{store: store, colors: colors}
}

// Assign gives every ticker in the active set a color, keeping existing
// assignments untouched, then prunes tickers no longer present and persists
// only when something actually changed. Re-invoking with an unchanged set is
// a no-op: identical mapping, no redundant persist.
func (a *Allocator) Assign(tickers []string) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed := false
	for _, t := range tickers {
		if _, ok := a.colors[t]; ok {
			continue
		}
		a.colors[t] = a.nextColor()
		changed = true
	}

	active := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		active[t] = true
	}
	for t := range a.colors {
		if !active[t] {
			delete(a.colors, t)
			changed = true
		}
	}

	if changed {
		if err := a.store.Save(a.colors); err != nil {
			log.Printf("[WARN] persist color assignments: %v", err)
		}
	}

	out := make(map[string]string, len(a.colors))
	for t, c := range a.colors {
		out[t] = c
	}
	return out
}

// nextColor returns the first palette color not currently assigned, or a
// golden-angle hue seeded by the mapping size once the palette is exhausted.
// For palette-sized sets no two simultaneous assignments collide.
func (a *Allocator) nextColor() string {
	used := make(map[string]bool, len(a.colors))
	for _, c := range a.colors {
		used[c] = true
	}
	for _, c := range defaultPalette {
		if !used[c] {
			return c
		}
	}
	hue := float64(len(a.colors)) * goldenAngle
	hue -= 360 * float64(int(hue/360))
	return fmt.Sprintf("hsl(%.0f, 70%%, 50%%)", hue)
}
