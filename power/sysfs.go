package power

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultSysfsRoot is where Linux exposes power supplies.
const DefaultSysfsRoot = "/sys/class/power_supply"

// Sysfs reads the power state from the Linux power_supply class. Multiple
// batteries are combined by their stored energy (or charge) if every battery
// reports it, and by averaging the capacity otherwise. The remaining time
// assumes they discharge one after another.
type Sysfs struct {
	Root string
}

// NewSysfs returns a Sampler reading power supplies from root.
func NewSysfs(root string) (*Sysfs, error) {
	if fi, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrUnsupported
		}
		return nil, err
	} else if !fi.IsDir() {
		return nil, errors.Errorf("%s is not a directory", root)
	}
	return &Sysfs{Root: root}, nil
}

type sysfsBattery struct {
	Status   string
	Capacity int
	Now      float64 // µWh or µAh
	Full     float64 // ^
	Rate     float64 // µW or µA
}

func (s *Sysfs) Sample() (Snapshot, error) {
	des, err := os.ReadDir(s.Root)
	if err != nil {
		return Snapshot{}, err
	}
	var (
		mainsKnown bool
		mains      bool
		bats       []sysfsBattery
	)
	for _, de := range des {
		dir := filepath.Join(s.Root, de.Name())
		typ, err := readFileString(filepath.Join(dir, "type"))
		if err != nil {
			continue // not a power supply
		}
		switch typ {
		case "Mains", "USB", "USB_C", "USB_PD", "USB_PD_DRP":
			if online, err := readFileInt[int](filepath.Join(dir, "online")); err == nil {
				mainsKnown = true
				mains = mains || online != 0
			}
		case "Battery":
			if present, err := readFileInt[int](filepath.Join(dir, "present")); err == nil && present == 0 {
				continue
			}
			if scope, _ := readFileString(filepath.Join(dir, "scope")); scope == "Device" {
				continue // peripheral (mouse, keyboard, etc)
			}
			bat, err := readSysfsBattery(dir)
			if err != nil {
				return Snapshot{}, errors.Wrapf(err, "read battery %s", de.Name())
			}
			bats = append(bats, bat)
		}
	}
	return sysfsSnapshot(mainsKnown, mains, bats), nil
}

func readSysfsBattery(dir string) (sysfsBattery, error) {
	var (
		bat sysfsBattery
		err error
	)
	if bat.Status, err = readFileString(filepath.Join(dir, "status")); err != nil {
		return bat, errors.Wrap(err, "status")
	}
	if bat.Capacity, err = readFileInt[int](filepath.Join(dir, "capacity")); err != nil {
		return bat, errors.Wrap(err, "capacity")
	}
	for _, unit := range [][3]string{
		{"energy_now", "energy_full", "power_now"},
		{"charge_now", "charge_full", "current_now"},
	} {
		now, err1 := readFileInt[int64](filepath.Join(dir, unit[0]))
		full, err2 := readFileInt[int64](filepath.Join(dir, unit[1]))
		rate, err3 := readFileInt[int64](filepath.Join(dir, unit[2]))
		if err1 == nil && err2 == nil && err3 == nil {
			bat.Now = float64(now)
			bat.Full = float64(full)
			bat.Rate = math.Abs(float64(rate)) // some drivers report a negative rate while discharging
			break
		}
	}
	return bat, nil
}

func sysfsSnapshot(mainsKnown, mains bool, bats []sysfsBattery) Snapshot {
	snap := Snapshot{
		OnAC:  mains,
		Valid: len(bats) != 0,
	}
	if !mainsKnown {
		for _, bat := range bats {
			switch bat.Status {
			case "Charging", "Full", "Not charging":
				snap.OnAC = true
			}
		}
	}
	if len(bats) == 0 {
		return snap
	}
	var (
		capacity  int
		now, full float64
		weighted  = true
		hours     float64
	)
	for _, bat := range bats {
		capacity += bat.Capacity
		now += bat.Now
		full += bat.Full
		weighted = weighted && bat.Full > 0
		if bat.Rate > 0 {
			switch {
			case !snap.OnAC && bat.Status == "Discharging":
				hours += bat.Now / bat.Rate
			case snap.OnAC && bat.Status == "Charging":
				hours += max(bat.Full-bat.Now, 0) / bat.Rate
			}
		}
	}
	if weighted && len(bats) > 1 {
		snap.Percent = int(math.Round(now / full * 100))
	} else {
		snap.Percent = (capacity + len(bats)/2) / len(bats)
	}
	snap.MinutesRemaining = int(hours * 60)
	return snap
}

func readFileString(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(b)), nil
}

func readFileInt[T ~int | ~int8 | ~int16 | ~int32 | ~int64](name string) (T, error) {
	var z T
	b, err := os.ReadFile(name)
	if err != nil {
		return z, err
	}
	v, err := strconv.ParseInt(string(bytes.TrimSpace(b)), 10, int(unsafe.Sizeof(z)*8))
	if err != nil {
		return z, err
	}
	return T(v), nil
}
