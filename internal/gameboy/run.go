package gameboy

import (
	"context"
	"errors"
	"time"
)

// errStopped is returned by StepFrame when Run is cancelled
// part way through a frame.
var errStopped = errors.New("gameboy: stopped")

// pausedPoll is how often a paused Run checks to resume.
const pausedPoll = 10 * time.Millisecond

// Run steps whole frames until ctx is cancelled or the CPU fails,
// sending a copy of each completed frame to frames (if not nil).
// Cancellation is checked between instructions, pausing between
// frames. Run returns ctx.Err() once cancelled.
func (g *GameBoy) Run(ctx context.Context, frames chan<- *Frame) error {
	if g.cart == nil {
		return ErrNoCartridge
	}

	g.stopping.Store(false)
	defer g.stopping.Store(false)
	stop := context.AfterFunc(ctx, func() {
		g.stopping.Store(true)
	})
	defer stop()

	next := time.Now()
	for n := 0; ; {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.config.Paused() {
			time.Sleep(pausedPoll)
			next = time.Now()
			continue
		}

		if err := g.StepFrame(); err != nil {
			if errors.Is(err, errStopped) {
				return ctx.Err()
			}
			g.Errorf("stopped: %v", err)
			return err
		}

		settings := g.config.Settings()
		if frames != nil && n%(settings.FrameSkip+1) == 0 {
			select {
			case frames <- g.FrameBuffer():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		n++

		if settings.Pacing {
			next = next.Add(time.Duration(float64(time.Second) / (FrameRate * settings.Speed)))
			if d := time.Until(next); d > 0 {
				time.Sleep(d)
			} else {
				// fell behind, don't try to catch up
				next = time.Now()
			}
		}
	}
}
