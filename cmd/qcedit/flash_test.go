package main

import (
	"testing"
	"time"
)

// TestFlashPhaseCalculation verifies the phase logic for message flashing
func TestFlashPhaseCalculation(t *testing.T) {
	// normal(0-125) -> inverted(125-250) -> normal(250-375) -> inverted(375-500) -> normal(500+)
	tests := []struct {
		elapsed      int64
		wantInverted bool
		description  string
	}{
		{-10, false, "clock skew - normal"},
		{0, false, "start of flash - normal"},
		{124, false, "end of phase 0 - normal"},
		{125, true, "start of phase 1 - inverted"},
		{249, true, "end of phase 1 - inverted"},
		{250, false, "start of phase 2 - normal"},
		{374, false, "end of phase 2 - normal"},
		{375, true, "start of phase 3 - inverted"},
		{499, true, "end of phase 3 - inverted"},
		{500, false, "after flash period - normal"},
		{1000, false, "long after flash - normal"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := flashInverted(tt.elapsed); got != tt.wantInverted {
				t.Errorf("elapsed=%d: got inverted=%v, want %v", tt.elapsed, got, tt.wantInverted)
			}
		})
	}
}

// TestFlashing verifies the refresh window that keeps the flash animating
func TestFlashing(t *testing.T) {
	ed := &Editor{}
	if ed.flashing() {
		t.Error("no message shown, should not flash")
	}

	ed.showMessage("Saved", MsgSuccess)
	if !ed.flashing() {
		t.Error("fresh message should flash")
	}

	ed.messageFlashStart.Store(time.Now().Add(-time.Second).UnixMilli())
	if ed.flashing() {
		t.Error("message older than the flash window should not flash")
	}
}
