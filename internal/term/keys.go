package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"uberdrive/internal/drive"
)

// keyName maps a terminal key onto the shared key vocabulary. r is only
// meaningful for tcell.KeyRune.
func keyName(k tcell.Key, r rune) (string, bool) {
	switch k {
	case tcell.KeyLeft:
		return drive.KeyArrowLeft, true
	case tcell.KeyRight:
		return drive.KeyArrowRight, true
	case tcell.KeyUp:
		return drive.KeyArrowUp, true
	case tcell.KeyDown:
		return drive.KeyArrowDown, true
	case tcell.KeyRune:
		switch unicode.ToLower(r) {
		case 'a':
			return drive.KeyA, true
		case 'd':
			return drive.KeyD, true
		case 'w':
			return drive.KeyW, true
		case 's':
			return drive.KeyS, true
		}
	}
	return "", false
}

func isQuit(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}
