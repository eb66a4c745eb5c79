package snake

import "github.com/vovakirdan/arcade-pulse/internal/config"

// Multiplier is the streak tier driven by real elapsed time.
// Apples fill the meter and raise the tier; idle time drains it.
type Multiplier struct {
	cfg   config.MultiplierConfig
	tier  int
	meter int // ms of progress within the current tier
}

// NewMultiplier creates a multiplier at tier 1 with an empty meter.
func NewMultiplier(cfg config.MultiplierConfig) *Multiplier {
	m := &Multiplier{cfg: cfg}
	m.Reset()
	return m
}

// Reset returns to tier 1 with an empty meter.
func (m *Multiplier) Reset() {
	m.tier = 1
	m.meter = 0
}

// Tier returns the current tier, 1..MaxTier.
func (m *Multiplier) Tier() int {
	return m.tier
}

// MeterMs returns the meter progress in milliseconds.
func (m *Multiplier) MeterMs() int {
	return m.meter
}

// Fraction returns the meter as a value in [0, 1].
func (m *Multiplier) Fraction() float64 {
	if m.cfg.MeterFullMs <= 0 {
		return 0
	}
	f := float64(m.meter) / float64(m.cfg.MeterFullMs)
	return min(1, max(0, f))
}

// Elapsed drains the meter by dtMs of real time. A single call is capped at
// MaxElapsedMs so a long hitch cannot drop several tiers at once.
func (m *Multiplier) Elapsed(dtMs int) {
	dt := max(0, dtMs)
	if m.cfg.MaxElapsedMs > 0 {
		dt = min(dt, m.cfg.MaxElapsedMs)
	}
	if m.tier <= 1 && m.meter <= 0 {
		return
	}

	m.meter -= dt * m.cfg.DecayPerSecMs / 1000
	for m.meter < 0 && m.tier > 1 {
		m.tier--
		m.meter += m.cfg.MeterFullMs
	}
	if m.meter < 0 {
		m.meter = 0
	}
}

// OnApple adds the per-apple gain, promoting while the meter is full.
// At the top tier the meter is clamped to full.
func (m *Multiplier) OnApple() {
	m.meter += m.cfg.GainOnAppleMs
	for m.meter >= m.cfg.MeterFullMs && m.tier < m.cfg.MaxTier {
		m.meter -= m.cfg.MeterFullMs
		m.tier++
	}
	if m.tier >= m.cfg.MaxTier && m.meter > m.cfg.MeterFullMs {
		m.meter = m.cfg.MeterFullMs
	}
}
