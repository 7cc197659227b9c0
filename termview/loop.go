package termview

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Sim is a simulation the terminal loop can drive.
type Sim interface {
	Source
	Update()
	Paused() bool
	SetPaused(bool)
	StepsPerUpdate() int
	SetStepsPerUpdate(int)
}

// Run drives sim on screen at fps frames per second until the user quits or
// maxTicks ticks have run (0 = unlimited). The screen must be initialised.
func Run(screen tcell.Screen, r *Renderer, sim Sim, fps int, maxTicks uint64) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	if fps < 1 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !handleEvent(screen, sim, ev) {
				return
			}
		case <-ticker.C:
			sim.Update()
			r.DrawFrame(sim, sim.Paused(), sim.StepsPerUpdate())
			if maxTicks > 0 && sim.TickCount() >= maxTicks {
				return
			}
		}
	}
}

// handleEvent applies a key or resize event. It returns false to quit.
func handleEvent(screen tcell.Screen, sim Sim, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			sim.SetPaused(!sim.Paused())
		case '+', '=':
			sim.SetStepsPerUpdate(sim.StepsPerUpdate() + 1)
		case '-':
			sim.SetStepsPerUpdate(sim.StepsPerUpdate() - 1)
		}
	}
	return true
}
