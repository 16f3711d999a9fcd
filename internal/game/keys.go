package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raycast/internal/input"
)

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readKeys samples the keyboard. Toggles fire once per key press, not once
// per frame while held.
func readKeys() input.State {
	return input.State{
		Forward:  pressed(ebiten.KeyW, ebiten.KeyUp),
		Backward: pressed(ebiten.KeyS, ebiten.KeyDown),
		Left:     pressed(ebiten.KeyA, ebiten.KeyLeft),
		Right:    pressed(ebiten.KeyD, ebiten.KeyRight),
		LookUp:   pressed(ebiten.KeyQ, ebiten.KeyPageUp),
		LookDown: pressed(ebiten.KeyZ, ebiten.KeyPageDown),
		Rise:     pressed(ebiten.KeyE),
		Fall:     pressed(ebiten.KeyC),

		ToggleCeiling: inpututil.IsKeyJustPressed(ebiten.KeyF),
		ToggleMap:     inpututil.IsKeyJustPressed(ebiten.KeyTab),
		Pause:         inpututil.IsKeyJustPressed(ebiten.KeyP),
		Quit:          ebiten.IsKeyPressed(ebiten.KeyEscape),
	}
}
