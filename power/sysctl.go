package power

// FreeBSD ACPI sysctl names.
const (
	sysctlACLine = "hw.acpi.acline"
	sysctlLife   = "hw.acpi.battery.life"
	sysctlTime   = "hw.acpi.battery.time"
)

// Sysctl reads the power state from the FreeBSD ACPI sysctls.
type Sysctl struct {
	get func(name string) (uint32, error)
}

func (s *Sysctl) Sample() (Snapshot, error) {
	var v [3]int32
	for i, name := range []string{sysctlACLine, sysctlLife, sysctlTime} {
		x, err := s.get(name)
		if err != nil {
			return Snapshot{}, &SysctlError{Name: name, Err: err}
		}
		v[i] = int32(x) // the sysctls are signed ints
	}
	return sysctlSnapshot(v[0], v[1], v[2]), nil
}

// SysctlError is returned when a sysctl cannot be read.
type SysctlError struct {
	Name string
	Err  error
}

func (e *SysctlError) Error() string {
	return "sysctl " + e.Name + ": " + e.Err.Error()
}

func (e *SysctlError) Unwrap() error {
	return e.Err
}

// sysctlSnapshot converts the raw sysctl values. The battery life is -1 if
// there is no battery, and the time is -1 while on AC power.
func sysctlSnapshot(acline, life, time int32) Snapshot {
	return Snapshot{
		OnAC:             acline != 0,
		Percent:          int(life),
		MinutesRemaining: int(max(time, 0)),
		Valid:            life >= 0,
	}
}
