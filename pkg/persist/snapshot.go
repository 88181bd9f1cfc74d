// Package persist stores the last-used parameters in sqlite with a
// capture timestamp, and discards them once they are older than a TTL.
package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// StorageName is the fixed key the generator state is saved under.
const StorageName = "clamp-storage"

// DefaultTTL is how long a saved snapshot stays usable.
const DefaultTTL = 24 * time.Hour

// Snapshot is a stored parameter set wrapped with the time it was captured.
type Snapshot struct {
	State     clamp.Params `json:"state"`
	Timestamp int64        `json:"timestamp"` // unix milliseconds
}

// NewSnapshot wraps p with the capture time now.
func NewSnapshot(p clamp.Params, now time.Time) Snapshot {
	return Snapshot{State: p, Timestamp: now.UnixMilli()}
}

// CapturedAt returns the capture time.
func (s Snapshot) CapturedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// LoadIfFresh returns the stored parameters if the snapshot is no older
// than ttl at time now. A snapshot exactly ttl old is still fresh.
// Snapshots with unsupported units are rejected as well.
func LoadIfFresh(now time.Time, snap Snapshot, ttl time.Duration) (clamp.Params, bool) {
	age := now.Sub(snap.CapturedAt())
	if age > ttl {
		return clamp.Params{}, false
	}
	if err := snap.State.CheckUnits(); err != nil {
		return clamp.Params{}, false
	}
	if snap.State.RootFontSizePx == 0 {
		snap.State.RootFontSizePx = clamp.DefaultRootFontSizePx
	}
	return snap.State, true
}

func encodeState(p clamp.Params) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

func decodeState(raw string) (clamp.Params, error) {
	var p clamp.Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return clamp.Params{}, fmt.Errorf("decode state: %w: %w", ErrCorrupt, err)
	}
	return p, nil
}
