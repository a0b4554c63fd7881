package core

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidDimensions is returned for boards narrower or shorter than one cell.
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	// ErrInvalidHitPoints is returned when a stone is placed with less than one hit point.
	ErrInvalidHitPoints = errors.New("stone hit points must be positive")
	// ErrCascadeActive is returned when a cascade is requested while one is running.
	ErrCascadeActive = errors.New("cascade already resolving")
)
