package power

import "testing"

func TestUPowerSnapshot(t *testing.T) {
	for _, tc := range []struct {
		name   string
		device upowerDevice
		snap   Snapshot
	}{
		{"discharging", upowerDevice{OnBattery: true, Type: 2, IsPresent: true, Percentage: 8.6, State: 2, TimeToEmpty: 900, TimeToFull: 0}, Snapshot{OnAC: false, Percent: 9, MinutesRemaining: 15, Valid: true}},
		{"charging", upowerDevice{OnBattery: false, Type: 2, IsPresent: true, Percentage: 74.2, State: 1, TimeToEmpty: 0, TimeToFull: 1800}, Snapshot{OnAC: true, Percent: 74, MinutesRemaining: 30, Valid: true}},
		{"fully charged", upowerDevice{OnBattery: false, Type: 2, IsPresent: true, Percentage: 100, State: 4}, Snapshot{OnAC: true, Percent: 100, Valid: true}},
		{"no battery", upowerDevice{OnBattery: false, Type: 0}, Snapshot{OnAC: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if snap := tc.device.snapshot(); snap != tc.snap {
				t.Errorf("expected %#v, got %#v", tc.snap, snap)
			}
		})
	}
}
