// Package components defines ECS components for active touches.
package components

// Touch identifies a pointer contact by the platform-assigned ID.
type Touch struct {
	ID uint64
}

// Position is the last known location of a touch in grid coordinates.
type Position struct {
	X, Y float32
}

// Pressure is the normalized, clamped pressure of a touch.
type Pressure struct {
	Value float32
}

// Age counts the frames a touch has been held. Used by the HUD and telemetry.
type Age struct {
	Frames int
}
