package telemetry

import (
	"time"

	"codeberg.org/mutker/znfsd/internal/netrate"
)

// TemperatureSource reads the board temperature in millidegrees Celsius.
type TemperatureSource interface {
	ReadMilliCelsius() (float64, error)
}

// SystemSource reads OS level counters. All reads are instantaneous.
type SystemSource interface {
	// CPUPercent returns utilization since the previous call.
	CPUPercent() (float64, error)
	MemPercent() (float64, error)
	BootTime() (time.Time, error)
	NetCounters() (map[string]netrate.Counters, error)
}

// Field identifies a snapshot value.
type Field uint8

const (
	FieldCPU Field = 1 << iota
	FieldMem
	FieldTemp
	FieldUptime
	FieldNetwork

	AllFields = FieldCPU | FieldMem | FieldTemp | FieldUptime | FieldNetwork
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldCPU, "cpu"},
	{FieldMem, "memory"},
	{FieldTemp, "temperature"},
	{FieldUptime, "uptime"},
	{FieldNetwork, "network"},
}

// Names lists the fields set in f.
func (f Field) Names() []string {
	var names []string
	for _, fn := range fieldNames {
		if f&fn.field != 0 {
			names = append(names, fn.name)
		}
	}

	return names
}

// Snapshot is one tick's worth of telemetry. Values of fields missing from
// Valid are zero and must not be used.
type Snapshot struct {
	TakenAt     time.Time
	CPUPercent  float64
	MemPercent  float64
	TempCelsius float64
	Uptime      time.Duration
	Network     map[string]netrate.Counters
	Valid       Field
}

// Has reports whether field was read successfully.
func (s Snapshot) Has(field Field) bool {
	return s.Valid&field == field
}
