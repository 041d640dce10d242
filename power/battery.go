package power

import (
	"math"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
)

// Battery reads the power state using the platform-independent battery
// package. It is used when nothing more specific is available.
type Battery struct {
	getAll func() ([]*battery.Battery, error)
}

// NewBattery returns a Sampler using the battery package.
func NewBattery() *Battery {
	return &Battery{getAll: battery.GetAll}
}

func (b *Battery) Sample() (Snapshot, error) {
	bats, err := b.getAll()
	if err != nil {
		errs, ok := err.(battery.Errors)
		if !ok || len(errs) != len(bats) {
			return Snapshot{}, errors.Wrap(err, "get batteries")
		}
		var usable int
		for i, e := range errs {
			if e != nil && !usablePartial(e, bats[i]) {
				bats[i] = nil
			}
			if bats[i] != nil {
				usable++
			}
		}
		if usable == 0 {
			return Snapshot{}, errors.Wrap(err, "get batteries")
		}
	}
	return batterySnapshot(bats), nil
}

// usablePartial checks whether bat can still be used despite err. If only the
// charge rate is missing, it is zeroed so no time is estimated.
func usablePartial(err error, bat *battery.Battery) bool {
	var partial battery.ErrPartial
	if bat == nil || !errors.As(err, &partial) {
		return false
	}
	if partial.State != nil || partial.Current != nil || partial.Full != nil {
		return false
	}
	if partial.ChargeRate != nil {
		bat.ChargeRate = 0
	}
	return true
}

func batterySnapshot(bats []*battery.Battery) Snapshot {
	var (
		snap        Snapshot
		current     float64 // mWh
		full        float64 // mWh
		chargeHours float64
		drainHours  float64
		charging    bool
		discharging bool
	)
	for _, bat := range bats {
		if bat == nil || bat.Full == 0 {
			continue // ghost battery
		}
		snap.Valid = true
		current += bat.Current
		full += bat.Full
		switch bat.State.Raw {
		case battery.Charging:
			charging = true
			if bat.ChargeRate > 0 {
				chargeHours += max(bat.Full-bat.Current, 0) / bat.ChargeRate
			}
		case battery.Discharging, battery.Empty:
			discharging = true
			if bat.ChargeRate > 0 {
				drainHours += bat.Current / bat.ChargeRate
			}
		}
	}
	if !snap.Valid {
		return snap
	}
	snap.OnAC = charging || !discharging
	snap.Percent = int(math.Round(current / full * 100))
	if snap.OnAC {
		snap.MinutesRemaining = int(chargeHours * 60)
	} else {
		snap.MinutesRemaining = int(drainHours * 60)
	}
	return snap
}
