// Package netrate turns cumulative interface byte counters into per-second
// rates.
package netrate

import (
	"time"
)

// Counters are cumulative byte counters of one network interface.
type Counters struct {
	BytesSent uint64
	BytesRecv uint64
}

// Rate is a transfer rate in bytes per second.
type Rate struct {
	Sent float64
	Recv float64
}

type sample struct {
	counters Counters
	at       time.Time
}

// Tracker keeps the last observed counters per interface. It is not safe for
// concurrent use; the scheduler owns it.
type Tracker struct {
	last map[string]sample
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]sample)}
}

// Compute reports the rate of iface relative to the previous call for the
// same interface and stores cur as the new baseline. ok is false when no rate
// can be given: on the first observation, when no time has elapsed, or when a
// counter went backwards (reset or wrap).
func (t *Tracker) Compute(iface string, cur Counters, now time.Time) (rate Rate, ok bool) {
	prev, exists := t.last[iface]
	t.last[iface] = sample{counters: cur, at: now}
	if !exists {
		return Rate{}, false
	}

	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return Rate{}, false
	}

	if cur.BytesSent < prev.counters.BytesSent || cur.BytesRecv < prev.counters.BytesRecv {
		return Rate{}, false
	}

	return Rate{
		Sent: float64(cur.BytesSent-prev.counters.BytesSent) / elapsed,
		Recv: float64(cur.BytesRecv-prev.counters.BytesRecv) / elapsed,
	}, true
}

// Forget drops the baseline of iface.
func (t *Tracker) Forget(iface string) {
	delete(t.last, iface)
}

// Interfaces returns the interfaces that currently have a baseline.
func (t *Tracker) Interfaces() []string {
	names := make([]string, 0, len(t.last))
	for name := range t.last {
		names = append(names, name)
	}

	return names
}
