package models

import "errors"

var (
	// ErrNotContainer is the only error that halts a whole compilation:
	// the input root is not a recognized layout container.
	ErrNotContainer = errors.New("layout root is not an svg container")

	ErrInvalidOptions = errors.New("invalid compiler options")
	ErrInvalidRooms   = errors.New("invalid room metadata")
	ErrSceneNotFound  = errors.New("scene not found")
)
