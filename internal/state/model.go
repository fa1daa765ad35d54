package state

// Mode selects what a pointer-down does on the canvas.
type Mode string

const (
	ModeDraw       Mode = "draw"
	ModeErase      Mode = "erase"
	ModeFill       Mode = "fill"
	ModeDecorative Mode = "decorative"
)

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeDraw, ModeErase, ModeFill, ModeDecorative}
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, bool) {
	switch m := Mode(name); m {
	case ModeDraw, ModeErase, ModeFill, ModeDecorative:
		return m, true
	}
	return "", false
}
