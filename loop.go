package pixelbatt

import (
	"os"
	"time"

	"github.com/pgaskin/pixelbatt/internal/logutil"
	"github.com/pgaskin/pixelbatt/power"
	"github.com/sirupsen/logrus"
)

// Loop is the main loop. It samples the power state every poll interval and
// handles display events in between. Everything happens on the goroutine
// calling Run.
type Loop struct {
	cfg     Config
	display Display
	sampler power.Sampler
	signal  *LoopSignal
	log     logrus.FieldLogger

	state  *RenderState
	popup  *PopupController
	bar    Surface
	mapped bool
	closed bool

	timer   *time.Timer
	timeout func(time.Duration) <-chan time.Time // for tests
}

// NewLoop creates the bar surface on d and maps it. The loop takes ownership
// of d, which is closed when Run returns (or by NewLoop if it fails). The
// thickness in cfg must already be clamped to the display.
func NewLoop(cfg Config, d Display, sampler power.Sampler, signal *LoopSignal, log logrus.FieldLogger) (*Loop, error) {
	l := &Loop{
		cfg:     cfg,
		display: d,
		sampler: sampler,
		signal:  signal,
		log:     logutil.OrDiscard(log),
		state:   NewRenderState(d.Bounds(), cfg.Edge, cfg.Thickness),
	}
	if l.signal == nil {
		l.signal = new(LoopSignal)
	}
	l.popup = NewPopupController(d, cfg.Font, l.log)

	bar, err := d.CreateSurface(SurfaceOptions{
		Name:       "pixelbatt",
		Bounds:     l.state.Bounds(),
		Background: Black,
		Border:     Black,
		StayOnTop:  cfg.StayOnTop,
		Events:     true,
	})
	if err != nil {
		l.Close()
		return nil, platformErr("create surface", "bar", err)
	}
	l.bar = bar

	if err := l.bar.Map(false); err != nil {
		l.Close()
		return nil, platformErr("map surface", "bar", err)
	}
	l.mapped = true

	return l, nil
}

// State returns the current render state.
func (l *Loop) State() *RenderState {
	return l.state
}

// Popup returns the popup controller.
func (l *Loop) Popup() *PopupController {
	return l.popup
}

// Run samples the power state, then runs the loop until the LoopSignal is set
// (directly or by receiving from signals) or a fatal error occurs. All
// resources are released before it returns. A nil error means a clean
// shutdown.
func (l *Loop) Run(signals <-chan os.Signal) error {
	defer l.Close()

	if err := l.sample(); err != nil {
		return err
	}
	for {
		if l.signal.IsSet() {
			l.log.Info("terminating")
			return nil
		}
		if err := l.display.Flush(); err != nil {
			return platformErr("flush", "", err)
		}
		select {
		case sig := <-signals:
			// an interrupted wait; check the signal again before doing
			// anything else
			l.log.WithField("signal", sig).Info("caught signal")
			l.signal.Set()

		case err := <-l.display.Err():
			return platformErr("display connection", l.cfg.Display, err)

		case batch := <-l.display.Events():
			if err := l.drain(batch); err != nil {
				return err
			}

		case <-l.wait(l.cfg.PollInterval):
			// events which were already pending take priority over the
			// timeout
			select {
			case batch := <-l.display.Events():
				if err := l.drain(batch); err != nil {
					return err
				}
				continue
			default:
			}
			if err := l.sample(); err != nil {
				return err
			}
		}
	}
}

// Close releases the popup, the font, the bar, and the display. It is called
// by Run, and does nothing if called again.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if err := l.popup.Close(); err != nil {
		l.log.WithError(err).Warn("failed to release popup")
	}
	if l.bar != nil {
		if err := l.bar.Destroy(); err != nil {
			l.log.WithError(err).Warn("failed to release bar")
		}
		l.bar = nil
	}
	if err := l.display.Close(); err != nil {
		l.log.WithError(err).Warn("failed to close display")
	}
}

func (l *Loop) wait(d time.Duration) <-chan time.Time {
	if l.timeout != nil {
		return l.timeout(d)
	}
	if l.timer == nil {
		l.timer = time.NewTimer(d)
	} else {
		l.timer.Stop()
		l.timer.Reset(d)
	}
	return l.timer.C
}

// drain dispatches batch, then every other batch which is already pending.
func (l *Loop) drain(batch []Event) error {
	for {
		for _, ev := range batch {
			if err := l.dispatch(ev); err != nil {
				return err
			}
		}
		select {
		case batch = <-l.display.Events():
		default:
			return nil
		}
	}
}

func (l *Loop) dispatch(ev Event) error {
	l.log.WithField("event", ev.Kind).Trace("event")
	switch ev.Kind {
	case EventPointerEnter:
		return l.popup.Show(l.state)
	case EventPointerLeave:
		return l.popup.Hide()
	case EventVisibilityChange:
		if l.cfg.StayOnTop {
			if err := l.bar.Raise(); err != nil {
				return platformErr("raise surface", "bar", err)
			}
		}
	case EventExpose:
		l.state.Redraw(l.bar)
	}
	return nil
}

func (l *Loop) sample() error {
	snap, err := l.sampler.Sample()
	if err != nil {
		return sampleErr("sample power state", err)
	}
	l.state.Update(snap)

	log := l.log.WithFields(logrus.Fields{
		"valid":   l.state.Snapshot.Valid,
		"ac":      l.state.Snapshot.OnAC,
		"percent": l.state.Snapshot.Percent,
	})
	if r := l.state.Snapshot.Remaining(); r != "" {
		log = log.WithField("remaining", r)
	}
	log.Debug("sample")

	if l.cfg.HideThreshold > 0 {
		if l.state.ShouldHide(l.cfg.HideThreshold) {
			if l.mapped {
				l.log.Debug("bar: hide")
				if err := l.bar.Unmap(); err != nil {
					return platformErr("unmap surface", "bar", err)
				}
				l.mapped = false
			}
			return nil
		}
		if !l.mapped {
			l.log.Debug("bar: show")
			if err := l.bar.Map(l.cfg.StayOnTop); err != nil {
				return platformErr("map surface", "bar", err)
			}
			l.mapped = true
		}
	}

	l.state.Redraw(l.bar)

	if l.state.LowBattery(l.cfg.WarnThreshold) {
		if err := l.popup.Show(l.state); err != nil {
			return err
		}
	}
	return nil
}
