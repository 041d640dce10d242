package xbar

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pgaskin/pixelbatt"
)

func TestTranslateEvent(t *testing.T) {
	for _, tc := range []struct {
		name string
		ev   xgb.Event
		kind pixelbatt.EventKind
		ok   bool
	}{
		{"expose", xproto.ExposeEvent{Count: 0}, pixelbatt.EventExpose, true},
		{"expose more", xproto.ExposeEvent{Count: 2}, 0, false},
		{"enter", xproto.EnterNotifyEvent{}, pixelbatt.EventPointerEnter, true},
		{"leave", xproto.LeaveNotifyEvent{}, pixelbatt.EventPointerLeave, true},
		{"visibility", xproto.VisibilityNotifyEvent{State: xproto.VisibilityPartiallyObscured}, pixelbatt.EventVisibilityChange, true},
		{"key", xproto.KeyPressEvent{}, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := translateEvent(tc.ev)
			if ok != tc.ok {
				t.Fatalf("expected ok=%t, got %t", tc.ok, ok)
			}
			if ok && ev.Kind != tc.kind {
				t.Errorf("expected %s, got %s", tc.kind, ev.Kind)
			}
		})
	}
}
