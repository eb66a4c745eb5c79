package core

// Intent is a discrete, already-decided player command.
// Front ends translate key presses into intents; the simulation never sees
// raw input.
type Intent int

const (
	IntentNone Intent = iota
	IntentTurnUp
	IntentTurnDown
	IntentTurnLeft
	IntentTurnRight
	IntentStartOrPause // Enter/Space: start from Start/Over, otherwise toggle pause
	IntentPause        // P: toggle pause only
	IntentRestart      // R: full reset into Playing
	IntentModeToggle   // M: Classic <-> Labyrinth
	IntentMapNext
	IntentMapPrev
	IntentUsePowerUp
	IntentPowerUpNext
	IntentPowerUpPrev
	IntentSpeedUp
	IntentSpeedDown
	IntentResetProgress
	IntentBackToStart
)

// TurnDirection returns the heading for a turn intent.
func (i Intent) TurnDirection() (Direction, bool) {
	switch i {
	case IntentTurnUp:
		return DirUp, true
	case IntentTurnDown:
		return DirDown, true
	case IntentTurnLeft:
		return DirLeft, true
	case IntentTurnRight:
		return DirRight, true
	}
	return DirRight, false
}

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentTurnUp:
		return "TurnUp"
	case IntentTurnDown:
		return "TurnDown"
	case IntentTurnLeft:
		return "TurnLeft"
	case IntentTurnRight:
		return "TurnRight"
	case IntentStartOrPause:
		return "StartOrPause"
	case IntentPause:
		return "Pause"
	case IntentRestart:
		return "Restart"
	case IntentModeToggle:
		return "ModeToggle"
	case IntentMapNext:
		return "MapNext"
	case IntentMapPrev:
		return "MapPrev"
	case IntentUsePowerUp:
		return "UsePowerUp"
	case IntentPowerUpNext:
		return "PowerUpNext"
	case IntentPowerUpPrev:
		return "PowerUpPrev"
	case IntentSpeedUp:
		return "SpeedUp"
	case IntentSpeedDown:
		return "SpeedDown"
	case IntentResetProgress:
		return "ResetProgress"
	case IntentBackToStart:
		return "BackToStart"
	default:
		return "Unknown"
	}
}
