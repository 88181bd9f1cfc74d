package persist

import (
	"testing"
	"time"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

func TestLoadIfFresh(t *testing.T) {
	captured := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	snap := NewSnapshot(customParams(), captured)

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"just saved", 0, true},
		{"one hour", time.Hour, true},
		{"exactly ttl", DefaultTTL, true},
		{"one ms past ttl", DefaultTTL + time.Millisecond, false},
		{"two days", 48 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := LoadIfFresh(captured.Add(tt.age), snap, DefaultTTL)
			if ok != tt.want {
				t.Fatalf("Expected fresh=%v, got %v", tt.want, ok)
			}
			if ok && p != customParams() {
				t.Errorf("Expected stored params, got %+v", p)
			}
		})
	}
}

func TestLoadIfFreshRejectsUnknownUnit(t *testing.T) {
	p := customParams()
	p.MaxValue.Unit = "em"
	snap := NewSnapshot(p, time.Unix(0, 0))

	if _, ok := LoadIfFresh(time.Unix(0, 0), snap, DefaultTTL); ok {
		t.Error("Expected snapshot with unsupported unit to be rejected")
	}
}

func TestLoadIfFreshFillsRootFontSize(t *testing.T) {
	p := customParams()
	p.RootFontSizePx = 0
	snap := NewSnapshot(p, time.Unix(100, 0))

	got, ok := LoadIfFresh(time.Unix(100, 0), snap, DefaultTTL)
	if !ok {
		t.Fatal("Expected fresh snapshot")
	}
	if got.RootFontSizePx != clamp.DefaultRootFontSizePx {
		t.Errorf("Expected default root font size, got %v", got.RootFontSizePx)
	}
}
