package netrate_test

import (
	"sort"
	"testing"
	"time"

	"codeberg.org/mutker/znfsd/internal/netrate"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestComputeFirstCallUnavailable(t *testing.T) {
	tr := netrate.NewTracker()

	rate, ok := tr.Compute("end0", netrate.Counters{BytesSent: 5000, BytesRecv: 7000}, t0)
	assert.False(t, ok)
	assert.Equal(t, netrate.Rate{}, rate)
}

func TestComputeRate(t *testing.T) {
	tr := netrate.NewTracker()
	tr.Compute("end0", netrate.Counters{BytesSent: 5000, BytesRecv: 7000}, t0)

	rate, ok := tr.Compute("end0", netrate.Counters{BytesSent: 6000, BytesRecv: 7000}, t0.Add(time.Second))
	assert.True(t, ok)
	assert.InDelta(t, 1000.0, rate.Sent, 1e-9)
	assert.InDelta(t, 0.0, rate.Recv, 1e-9)

	rate, ok = tr.Compute("end0", netrate.Counters{BytesSent: 7000, BytesRecv: 11000}, t0.Add(3*time.Second))
	assert.True(t, ok)
	assert.InDelta(t, 500.0, rate.Sent, 1e-9)
	assert.InDelta(t, 2000.0, rate.Recv, 1e-9)
}

func TestComputeCounterReset(t *testing.T) {
	tests := []struct {
		name string
		next netrate.Counters
	}{
		{"sent decreased", netrate.Counters{BytesSent: 10, BytesRecv: 9000}},
		{"recv decreased", netrate.Counters{BytesSent: 9000, BytesRecv: 10}},
		{"both decreased", netrate.Counters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := netrate.NewTracker()
			tr.Compute("end0", netrate.Counters{BytesSent: 5000, BytesRecv: 7000}, t0)

			_, ok := tr.Compute("end0", tt.next, t0.Add(time.Second))
			assert.False(t, ok)

			// The decreased counters became the baseline.
			next := netrate.Counters{BytesSent: tt.next.BytesSent + 100, BytesRecv: tt.next.BytesRecv + 200}
			rate, ok := tr.Compute("end0", next, t0.Add(2*time.Second))
			assert.True(t, ok)
			assert.InDelta(t, 100.0, rate.Sent, 1e-9)
			assert.InDelta(t, 200.0, rate.Recv, 1e-9)
		})
	}
}

func TestComputeNonPositiveElapsed(t *testing.T) {
	tr := netrate.NewTracker()
	tr.Compute("end0", netrate.Counters{BytesSent: 100}, t0)

	_, ok := tr.Compute("end0", netrate.Counters{BytesSent: 200}, t0)
	assert.False(t, ok, "zero elapsed")

	_, ok = tr.Compute("end0", netrate.Counters{BytesSent: 300}, t0.Add(-time.Second))
	assert.False(t, ok, "clock went backwards")

	rate, ok := tr.Compute("end0", netrate.Counters{BytesSent: 400}, t0)
	assert.True(t, ok)
	assert.InDelta(t, 100.0, rate.Sent, 1e-9)
}

func TestComputeIsPerInterface(t *testing.T) {
	tr := netrate.NewTracker()
	tr.Compute("end0", netrate.Counters{BytesSent: 100}, t0)

	_, ok := tr.Compute("wlan0", netrate.Counters{BytesSent: 100}, t0.Add(time.Second))
	assert.False(t, ok)

	_, ok = tr.Compute("end0", netrate.Counters{BytesSent: 200}, t0.Add(time.Second))
	assert.True(t, ok)

	names := tr.Interfaces()
	sort.Strings(names)
	assert.Equal(t, []string{"end0", "wlan0"}, names)
}

func TestForget(t *testing.T) {
	tr := netrate.NewTracker()
	tr.Compute("end0", netrate.Counters{BytesSent: 100}, t0)
	tr.Forget("end0")

	_, ok := tr.Compute("end0", netrate.Counters{BytesSent: 200}, t0.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, []string{"end0"}, tr.Interfaces())
}

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0B"},
		{1, "1B"},
		{512.9, "512B"},
		{1023, "1023B"},
		{1024, "1K"},
		{10000, "9K"},
		{1<<20 - 1, "1023K"},
		{100001221, "95M"},
		{3 << 30, "3G"},
		{1 << 40, "1T"},
		{1 << 50, "1P"},
		{1 << 60, "1E"},
		{1 << 70, "1Z"},
		{5 << 80, "5Y"},
		{2048 << 80, "2048Y"},
		{-5, "0B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, netrate.HumanizeBytes(tt.in), "HumanizeBytes(%v)", tt.in)
	}
}
