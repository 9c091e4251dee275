package engine

import "time"

// Clock supplies the engine's notion of now. Cooldown and growth checks all
// go through it so tests can drive time deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
