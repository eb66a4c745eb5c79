package snake

// PowerUp is a collectible token kind.
type PowerUp int

const (
	PowerUpMulligan   PowerUp = iota // Survive one fatal collision
	PowerUpPhaseWalls                // Pass through walls for a few moves
	powerUpCount                     // Sentinel for counting kinds
)

// Glyph returns the display character for a power-up.
func (p PowerUp) Glyph() rune {
	switch p {
	case PowerUpMulligan:
		return 'M'
	case PowerUpPhaseWalls:
		return 'P'
	default:
		return '?'
	}
}

// String returns the name of the power-up.
func (p PowerUp) String() string {
	switch p {
	case PowerUpMulligan:
		return "Mulligan"
	case PowerUpPhaseWalls:
		return "Phase"
	default:
		return "?"
	}
}

// Inventory is a bounded, ordered list of tokens with a selection cursor.
type Inventory struct {
	slots    []PowerUp
	selected int
	capacity int
}

// NewInventory creates an empty inventory holding at most capacity tokens.
func NewInventory(capacity int) *Inventory {
	return &Inventory{capacity: max(0, capacity)}
}

// Add appends a token. It returns false when the inventory is full; the
// caller converts the overflow into score.
func (inv *Inventory) Add(p PowerUp) bool {
	if len(inv.slots) >= inv.capacity {
		return false
	}
	inv.slots = append(inv.slots, p)
	return true
}

// Selected returns the token under the cursor.
func (inv *Inventory) Selected() (PowerUp, bool) {
	if len(inv.slots) == 0 {
		return 0, false
	}
	return inv.slots[inv.selected], true
}

// SelectedIndex returns the cursor position, 0 when empty.
func (inv *Inventory) SelectedIndex() int {
	return inv.selected
}

// UseSelected removes and returns the token under the cursor.
func (inv *Inventory) UseSelected() (PowerUp, bool) {
	if len(inv.slots) == 0 {
		return 0, false
	}
	p := inv.slots[inv.selected]
	inv.removeAt(inv.selected)
	return p, true
}

// ConsumeFirst removes the first token of kind p regardless of the cursor.
func (inv *Inventory) ConsumeFirst(p PowerUp) bool {
	for i, s := range inv.slots {
		if s == p {
			inv.removeAt(i)
			return true
		}
	}
	return false
}

func (inv *Inventory) removeAt(i int) {
	inv.slots = append(inv.slots[:i], inv.slots[i+1:]...)
	if inv.selected >= len(inv.slots) {
		inv.selected = max(0, len(inv.slots)-1)
	}
}

// CycleNext moves the cursor forward, wrapping.
func (inv *Inventory) CycleNext() {
	if len(inv.slots) == 0 {
		return
	}
	inv.selected = (inv.selected + 1) % len(inv.slots)
}

// CyclePrev moves the cursor backward, wrapping.
func (inv *Inventory) CyclePrev() {
	if len(inv.slots) == 0 {
		return
	}
	inv.selected = (inv.selected - 1 + len(inv.slots)) % len(inv.slots)
}

// Len returns the number of held tokens.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}

// Count returns how many tokens of kind p are held.
func (inv *Inventory) Count(p PowerUp) int {
	n := 0
	for _, s := range inv.slots {
		if s == p {
			n++
		}
	}
	return n
}

// Items returns a copy of the held tokens in order.
func (inv *Inventory) Items() []PowerUp {
	return append([]PowerUp(nil), inv.slots...)
}

// Clear drops every token.
func (inv *Inventory) Clear() {
	inv.slots = inv.slots[:0]
	inv.selected = 0
}

// Effects tracks timed effects. Durations count successful moves, never
// wall-clock time.
type Effects struct {
	phaseGrant int
	phaseMoves int
}

// NewEffects creates an effect tracker granting phaseMoves per activation.
func NewEffects(phaseMoves int) *Effects {
	return &Effects{phaseGrant: phaseMoves}
}

// ActivatePhase starts wall phasing, keeping a longer remaining duration.
func (e *Effects) ActivatePhase() {
	e.phaseMoves = max(e.phaseMoves, e.phaseGrant)
}

// PhaseActive reports whether wall collisions are suppressed.
func (e *Effects) PhaseActive() bool {
	return e.phaseMoves > 0
}

// PhaseMoves returns the remaining phase moves.
func (e *Effects) PhaseMoves() int {
	return e.phaseMoves
}

// OnSuccessfulMove ticks every effect down by one move.
func (e *Effects) OnSuccessfulMove() {
	if e.phaseMoves > 0 {
		e.phaseMoves--
	}
}

// Reset ends all effects.
func (e *Effects) Reset() {
	e.phaseMoves = 0
}
