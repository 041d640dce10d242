// Package power queries the power state of the machine.
package power

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pgaskin/pixelbatt/internal/logutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Snapshot is the power state at a single point in time. Snapshots are never
// modified after they are created.
type Snapshot struct {
	OnAC             bool
	Percent          int // may be outside [0, 100] if the backend misreports
	MinutesRemaining int // 0 if unknown
	Valid            bool
}

func (s Snapshot) String() string {
	if !s.Valid {
		return "no battery"
	}
	var state string
	if s.OnAC {
		state = "charging"
	} else {
		state = "discharging"
	}
	if r := s.Remaining(); r != "" {
		return fmt.Sprintf("%s %d%% (%s)", state, s.Percent, r)
	}
	return fmt.Sprintf("%s %d%%", state, s.Percent)
}

// Remaining describes MinutesRemaining like "2 hours left", or returns an
// empty string if it is unknown.
func (s Snapshot) Remaining() string {
	if s.MinutesRemaining <= 0 {
		return ""
	}
	var t time.Time
	return humanize.RelTime(t, t.Add(time.Duration(s.MinutesRemaining)*time.Minute), "left", "")
}

// Sampler reads the power state. The AC state, percentage, and remaining time
// are read together by a single call. Errors are not expected to be transient.
type Sampler interface {
	Sample() (Snapshot, error)
}

// SamplerFunc wraps a function in a Sampler.
type SamplerFunc func() (Snapshot, error)

func (fn SamplerFunc) Sample() (Snapshot, error) {
	return fn()
}

// ErrUnsupported is returned when a backend is not available on the current
// platform.
var ErrUnsupported = errors.New("not supported on this platform")

// Backends lists the backend names accepted by New, in the order they are
// tried by "auto".
var Backends = []string{"sysctl", "sysfs", "upower", "battery"}

// New returns the named backend. If name is "auto" or empty, the first backend
// which can successfully produce a sample is used.
func New(name string, log logrus.FieldLogger) (Sampler, error) {
	log = logutil.OrDiscard(log)
	switch name {
	case "", "auto":
		var errs []string
		for _, name := range Backends {
			s, err := open(name)
			if err == nil {
				_, err = s.Sample()
			}
			if err != nil {
				log.WithError(err).Debugf("power: %s backend unavailable", name)
				errs = append(errs, name+": "+err.Error())
				continue
			}
			log.Debugf("power: using %s backend", name)
			return s, nil
		}
		return nil, errors.Errorf("no usable power backend (%s)", strings.Join(errs, "; "))
	default:
		s, err := open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s backend", name)
		}
		return s, nil
	}
}

func open(name string) (Sampler, error) {
	switch name {
	case "sysctl":
		return NewSysctl()
	case "sysfs":
		return NewSysfs(DefaultSysfsRoot)
	case "upower":
		return NewUPower()
	case "battery":
		return NewBattery(), nil
	}
	return nil, errors.Errorf("unknown backend %q", name)
}

// KeepLastGood wraps s so that a failed sample is logged and replaced by the
// last successful one. If no sample has succeeded yet, the error is returned.
func KeepLastGood(s Sampler, log logrus.FieldLogger) Sampler {
	log = logutil.OrDiscard(log)
	var (
		last Snapshot
		ok   bool
	)
	return SamplerFunc(func() (Snapshot, error) {
		snap, err := s.Sample()
		if err != nil {
			if !ok {
				return Snapshot{}, err
			}
			log.WithError(err).Warnf("power: sample failed, using last known state (%s)", last)
			return last, nil
		}
		last, ok = snap, true
		return snap, nil
	})
}
