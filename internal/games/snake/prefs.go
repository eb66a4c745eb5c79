package snake

// Preference keys shared by the engine and its front ends.
const (
	KeyLevel = "pulse.level"
	KeyXP    = "pulse.xp"
	KeyHigh  = "pulse.high"
	KeySound = "pulse.sound"
)

// Prefs is the persistent key/value store for progress and high score.
type Prefs interface {
	Int(key string, def int) (int, error)
	SetInt(key string, v int) error
}
