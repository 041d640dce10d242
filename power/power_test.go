package power

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestKeepLastGood(t *testing.T) {
	var (
		errFail = errors.New("fail")
		results = []struct {
			snap Snapshot
			err  error
		}{
			{Snapshot{}, errFail},
			{Snapshot{Percent: 50, Valid: true}, nil},
			{Snapshot{}, errFail},
			{Snapshot{Percent: 40, Valid: true}, nil},
		}
		i int
	)
	log, hook := test.NewNullLogger()
	s := KeepLastGood(SamplerFunc(func() (Snapshot, error) {
		r := results[i]
		i++
		return r.snap, r.err
	}), log)

	if _, err := s.Sample(); err != errFail {
		t.Errorf("expected first failure to be returned, got %v", err)
	}
	if snap, err := s.Sample(); err != nil || snap.Percent != 50 {
		t.Errorf("expected 50%%, got %v %v", snap, err)
	}
	if snap, err := s.Sample(); err != nil || snap.Percent != 50 {
		t.Errorf("expected last known 50%%, got %v %v", snap, err)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Errorf("expected a warning to be logged")
	}
	if snap, err := s.Sample(); err != nil || snap.Percent != 40 {
		t.Errorf("expected 40%%, got %v %v", snap, err)
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("acpi", nil); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}

func TestSnapshotString(t *testing.T) {
	for _, tc := range []struct {
		snap Snapshot
		str  string
	}{
		{Snapshot{}, "no battery"},
		{Snapshot{OnAC: true, Percent: 100, Valid: true}, "charging 100%"},
		{Snapshot{Percent: 50, MinutesRemaining: 120, Valid: true}, "discharging 50% (2 hours left)"},
		{Snapshot{Percent: 9, MinutesRemaining: 15, Valid: true}, "discharging 9% (15 minutes left)"},
		{Snapshot{OnAC: true, Percent: 80, MinutesRemaining: 1, Valid: true}, "charging 80% (1 minute left)"},
		{Snapshot{Percent: 9, MinutesRemaining: -5, Valid: true}, "discharging 9%"},
	} {
		if str := tc.snap.String(); str != tc.str {
			t.Errorf("%#v: expected %q, got %q", tc.snap, tc.str, str)
		}
	}
}
