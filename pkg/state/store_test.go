package state

import (
	"math"
	"testing"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

func TestNewComputesInitialResult(t *testing.T) {
	s := New(clamp.DefaultParams())
	expr, ok := s.Result().Expression()
	if !ok || expr != "clamp(1rem, 0.8vw + 0.7rem, 1.5rem)" {
		t.Errorf("Unexpected initial result %q (ok=%v)", expr, ok)
	}
}

func TestSetValueNotifies(t *testing.T) {
	s := New(clamp.DefaultParams())

	var got []Snapshot
	s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.SetValue(clamp.MinValue, -5)
	if len(got) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(got))
	}
	if got[0].Params.MinValue != clamp.Px(-5) {
		t.Errorf("Expected min value -5px, got %v", got[0].Params.MinValue)
	}
	if got[0].Result.OK() {
		t.Error("Expected negative value to produce errors")
	}

	// Same value again: no change, no notification.
	s.SetValue(clamp.MinValue, -5)
	if len(got) != 1 {
		t.Errorf("Expected no notification for unchanged params, got %d", len(got))
	}
}

func TestSetUnitConvertsMagnitude(t *testing.T) {
	s := New(clamp.DefaultParams())

	s.SetUnit(clamp.MaxValue, clamp.UnitRem)
	if got := s.Params().MaxValue; got != clamp.Rem(1.5) {
		t.Errorf("Expected 1.5rem, got %v", got)
	}
	before, _ := clamp.Generate(clamp.DefaultParams()).Expression()
	after, _ := s.Result().Expression()
	if before != after {
		t.Errorf("Unit toggle changed the expression: %q -> %q", before, after)
	}

	s.ToggleUnit(clamp.MaxValue)
	if got := s.Params().MaxValue; got != clamp.Px(24) {
		t.Errorf("Expected 24px, got %v", got)
	}
}

func TestSetUnitKeepsExactValue(t *testing.T) {
	p := clamp.DefaultParams()
	p.RootFontSizePx = 12
	p.MinValue = clamp.Px(5)
	s := New(p)

	s.ToggleUnit(clamp.MinValue)
	if got := s.Params().MinValue.Value; math.Abs(got-5.0/12) > 1e-12 {
		t.Errorf("Expected unrounded 5/12 rem, got %v", got)
	}

	// Back to px, then nine more px/rem round trips.
	for i := 0; i < 19; i++ {
		s.ToggleUnit(clamp.MinValue)
	}
	got := s.Params().MinValue
	if got.Unit != clamp.UnitPx || math.Abs(got.Value-5) > 1e-9 {
		t.Errorf("Expected 5px after round trips, got %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New(clamp.DefaultParams())
	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })
	s.Subscribe(func(Snapshot) {})

	unsubscribe()
	if s.ObserverCount() != 1 {
		t.Errorf("Expected 1 observer, got %d", s.ObserverCount())
	}
	s.Replace(clamp.Params{
		MinViewportWidth: clamp.Px(320),
		MaxViewportWidth: clamp.Px(1280),
		MinValue:         clamp.Px(14),
		MaxValue:         clamp.Px(22),
		RootFontSizePx:   16,
	})
	if calls != 0 {
		t.Errorf("Unsubscribed observer called %d times", calls)
	}
}
