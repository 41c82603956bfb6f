package engine

import (
	"time"

	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
)

// Snapshot is the full in-memory state needed to resume a run.
type Snapshot struct {
	Tick    uint64                    `json:"tick"`
	Day     int64                     `json:"day"`
	TakenAt time.Time                 `json:"taken_at"`
	Agents  map[string]survival.State `json:"agents"`
	Devices []device.State            `json:"devices"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Tick:    e.tick,
		Day:     e.Climate.Day(),
		TakenAt: time.Now().UTC(),
		Agents:  e.Store.All(),
		Devices: e.Devices.List(),
	}
}

// Restore replaces engine state with snap. Listeners are not notified.
func (e *Engine) Restore(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tick = snap.Tick
	e.Climate.Restore(snap.Day)
	e.Store.Restore(snap.Agents)
	e.Devices.Restore(snap.Devices)
}
