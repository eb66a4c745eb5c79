package snake

// EventKind identifies something that happened during a step or intent.
type EventKind string

const (
	EventAppleEaten   EventKind = "apple"
	EventBonusSpawned EventKind = "bonus_spawned"
	EventBonusEaten   EventKind = "bonus_eaten"
	EventBonusExpired EventKind = "bonus_expired"
	EventPowerUp      EventKind = "powerup"       // Token added to the inventory
	EventOverflow     EventKind = "overflow"      // Token did not fit, paid as score
	EventPhase        EventKind = "phase"         // Phase walls activated
	EventMulligan     EventKind = "mulligan"      // Fatal collision undone
	EventSpeedUp      EventKind = "speed_up"      // Speed table advanced
	EventLevelUp      EventKind = "level_up"      // Progression level gained
	EventGameOver     EventKind = "game_over"
	EventNewHighScore EventKind = "new_high"
)

// Event is a cue for front ends: sound, flashes and unlock checks.
type Event struct {
	Kind  EventKind
	Value int // Level for EventLevelUp, score for EventGameOver, points otherwise
}

// Cause explains why a run ended.
type Cause string

const (
	CauseNone     Cause = ""
	CauseBoundary Cause = "boundary"
	CauseWall     Cause = "wall"
	CauseSelf     Cause = "self"
)
