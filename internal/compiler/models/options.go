package models

import "fmt"

// ============================================================
// Compiler options
// ============================================================

// Options tunes geometry compilation. The tolerance values are empirical;
// DoorMatchTolerance and SharedWallTolerance are in output (canvas) units.
type Options struct {
	DoorMatchTolerance  float64   `json:"doorMatchTolerance"`
	MergeEpsilon        float64   `json:"mergeEpsilon"`
	ProjectionSlack     float64   `json:"projectionSlack"`
	ClosePathThreshold  float64   `json:"closePathThreshold"`
	CurveSegmentCount   int       `json:"curveSegmentCount"`
	ArcSubsegmentCount  int       `json:"arcSubsegmentCount"`
	GenerateWalls       bool      `json:"generateWalls"`
	SkipOutdoorWalls    bool      `json:"skipOutdoorWalls"`
	DedupeSharedWalls   bool      `json:"dedupeSharedWalls"`
	SharedWallTolerance float64   `json:"sharedWallTolerance"`
	DefaultDoorState    DoorState `json:"defaultDoorState"`
	LightColor          string    `json:"lightColor"`
	LightAlpha          float64   `json:"lightAlpha"`
	LightBrightRatio    float64   `json:"lightBrightRatio"`
}

func DefaultOptions() Options {
	return Options{
		DoorMatchTolerance:  5,
		MergeEpsilon:        0.001,
		ProjectionSlack:     0.01,
		ClosePathThreshold:  0.5,
		CurveSegmentCount:   24,
		ArcSubsegmentCount:  8,
		GenerateWalls:       true,
		SkipOutdoorWalls:    true,
		DedupeSharedWalls:   true,
		SharedWallTolerance: 0.5,
		DefaultDoorState:    DoorClosed,
		LightColor:          "#f4d6a0",
		LightAlpha:          0.5,
		LightBrightRatio:    0.5,
	}
}

func (o Options) Validate() error {
	switch {
	case o.DoorMatchTolerance <= 0:
		return fmt.Errorf("%w: doorMatchTolerance must be > 0", ErrInvalidOptions)
	case o.MergeEpsilon <= 0:
		return fmt.Errorf("%w: mergeEpsilon must be > 0", ErrInvalidOptions)
	case o.ProjectionSlack < 0:
		return fmt.Errorf("%w: projectionSlack must be >= 0", ErrInvalidOptions)
	case o.ClosePathThreshold < 0:
		return fmt.Errorf("%w: closePathThreshold must be >= 0", ErrInvalidOptions)
	case o.CurveSegmentCount < 3:
		return fmt.Errorf("%w: curveSegmentCount must be >= 3", ErrInvalidOptions)
	case o.ArcSubsegmentCount < 1:
		return fmt.Errorf("%w: arcSubsegmentCount must be >= 1", ErrInvalidOptions)
	case o.SharedWallTolerance < 0:
		return fmt.Errorf("%w: sharedWallTolerance must be >= 0", ErrInvalidOptions)
	case o.LightAlpha < 0 || o.LightAlpha > 1:
		return fmt.Errorf("%w: lightAlpha must be within [0,1]", ErrInvalidOptions)
	case o.LightBrightRatio < 0 || o.LightBrightRatio > 1:
		return fmt.Errorf("%w: lightBrightRatio must be within [0,1]", ErrInvalidOptions)
	}
	if o.DefaultDoorState != DoorOpen && o.DefaultDoorState != DoorClosed {
		return fmt.Errorf("%w: unknown door state %q", ErrInvalidOptions, o.DefaultDoorState)
	}
	return nil
}
