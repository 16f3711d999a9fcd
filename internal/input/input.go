// Package input is the per-frame input snapshot the engine consumes. Hosts
// fill it from their own event sources.
package input

// State is what was held (or, for the toggles, pressed) during one frame.
// Nothing is buffered between frames.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	LookUp   bool
	LookDown bool
	Rise     bool
	Fall     bool

	ToggleCeiling bool
	ToggleMap     bool
	Pause         bool
	Quit          bool
}
