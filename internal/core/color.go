package core

// Color is a terminal color spec understood by lipgloss: an ANSI code such
// as "10" or a hex value such as "#5fd700". The empty string means default.
type Color string

// Colors used for board elements that are not skinned.
const (
	ColorDefault Color = ""
	ColorWall    Color = "240"
	ColorPellet  Color = "238"
	ColorBonus   Color = "13"
	ColorHUD     Color = "252"
	ColorAlert   Color = "9"
	ColorDim     Color = "245"
)
