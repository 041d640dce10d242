package power

import (
	"math"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

// UPower reads the power state from the UPower display device, which combines
// all system batteries.
type UPower struct {
	daemon dbus.BusObject
	device dbus.BusObject
}

// NewUPower connects to UPower on the system bus.
func NewUPower() (*UPower, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return &UPower{
		daemon: conn.Object("org.freedesktop.UPower", dbus.ObjectPath("/org/freedesktop/UPower")),
		device: conn.Object("org.freedesktop.UPower", dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")),
	}, nil
}

type upowerDevice struct {
	OnBattery   bool
	Type        uint32
	IsPresent   bool
	Percentage  float64
	State       uint32
	TimeToEmpty int64
	TimeToFull  int64
}

func (u *UPower) Sample() (Snapshot, error) {
	var prop upowerDevice
	if err := u.daemon.StoreProperty("org.freedesktop.UPower.OnBattery", &prop.OnBattery); err != nil {
		return Snapshot{}, errors.Wrap(err, "on battery")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.Type", &prop.Type); err != nil {
		return Snapshot{}, errors.Wrap(err, "type")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.IsPresent", &prop.IsPresent); err != nil {
		return Snapshot{}, errors.Wrap(err, "is present")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.Percentage", &prop.Percentage); err != nil {
		return Snapshot{}, errors.Wrap(err, "percentage")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.State", &prop.State); err != nil {
		return Snapshot{}, errors.Wrap(err, "state")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.TimeToEmpty", &prop.TimeToEmpty); err != nil {
		return Snapshot{}, errors.Wrap(err, "time to empty")
	}
	if err := u.device.StoreProperty("org.freedesktop.UPower.Device.TimeToFull", &prop.TimeToFull); err != nil {
		return Snapshot{}, errors.Wrap(err, "time to full")
	}
	return prop.snapshot(), nil
}

func (d upowerDevice) snapshot() Snapshot {
	snap := Snapshot{
		OnAC:    !d.OnBattery,
		Percent: int(math.Round(d.Percentage)),
		Valid:   d.IsPresent && d.Type == 2, // battery
	}
	switch d.State {
	case 1: // charging
		snap.MinutesRemaining = int(d.TimeToFull / 60)
	case 2: // discharging
		snap.MinutesRemaining = int(d.TimeToEmpty / 60)
	}
	return snap
}
