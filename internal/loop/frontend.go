package loop

import (
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
)

// StatDisplay shows the three running stats. Each setter is called
// whenever its value changes.
type StatDisplay interface {
	SetScore(score int)
	SetTime(seconds int)
	SetLives(lives int)
}

// ResultDisplay is the end-of-game panel.
type ResultDisplay interface {
	ShowResult(r Result)
	HideResult()
}

// DamageCue is a fire-and-forget effect played on every hit the player takes.
// It clears itself; the world never waits for it.
type DamageCue interface {
	Flash()
}

// StartControl is the start/restart action, enabled only while no game runs.
type StartControl interface {
	SetStartEnabled(enabled bool)
}

// Frontend groups the collaborators the world reports to.
type Frontend interface {
	StatDisplay
	ResultDisplay
	DamageCue
	StartControl
}

// EffectSink is optionally implemented by a Frontend to show debris where
// an enemy was destroyed.
type EffectSink interface {
	Burst(x, y float64, c draw.Color)
}

// Display is a Frontend that can also push a finished frame to the player.
type Display interface {
	Frontend
	Present() error
}

// InputSource is sampled once per tick. Sampling must not block.
type InputSource interface {
	Sample() input.Input
}

// DiscardFrontend ignores every report.
type DiscardFrontend struct{}

func (DiscardFrontend) SetScore(int)         {}
func (DiscardFrontend) SetTime(int)          {}
func (DiscardFrontend) SetLives(int)         {}
func (DiscardFrontend) ShowResult(Result)    {}
func (DiscardFrontend) HideResult()          {}
func (DiscardFrontend) Flash()               {}
func (DiscardFrontend) SetStartEnabled(bool) {}

var _ Frontend = DiscardFrontend{}
