package telemetry

import (
	"time"

	"codeberg.org/mutker/znfsd/internal/errors"
)

const milliPerDegree = 1000

type Sampler struct {
	temp TemperatureSource
	sys  SystemSource
}

func NewSampler(temp TemperatureSource, sys SystemSource) *Sampler {
	return &Sampler{temp: temp, sys: sys}
}

// Sample reads every field once. Fields that cannot be read are left out of
// Snapshot.Valid and reported together as a sensor error; the fields that
// were read are returned regardless.
func (s *Sampler) Sample(now time.Time) (Snapshot, error) {
	snap := Snapshot{TakenAt: now}

	var (
		failed Field
		errs   []error
	)
	fail := func(f Field, err error) {
		failed |= f
		errs = append(errs, err)
	}

	if milli, err := s.temp.ReadMilliCelsius(); err != nil {
		fail(FieldTemp, err)
	} else {
		snap.TempCelsius = milli / milliPerDegree
		snap.Valid |= FieldTemp
	}

	if cpu, err := s.sys.CPUPercent(); err != nil {
		fail(FieldCPU, err)
	} else {
		snap.CPUPercent = cpu
		snap.Valid |= FieldCPU
	}

	if mem, err := s.sys.MemPercent(); err != nil {
		fail(FieldMem, err)
	} else {
		snap.MemPercent = mem
		snap.Valid |= FieldMem
	}

	if boot, err := s.sys.BootTime(); err != nil {
		fail(FieldUptime, err)
	} else {
		snap.Uptime = max(now.Sub(boot), 0)
		snap.Valid |= FieldUptime
	}

	if counters, err := s.sys.NetCounters(); err != nil {
		fail(FieldNetwork, err)
	} else {
		snap.Network = counters
		snap.Valid |= FieldNetwork
	}

	if failed != 0 {
		return snap, errors.New().Wrap(errors.ErrSensor, errors.Join(errs...)).WithData(failed.Names())
	}

	return snap, nil
}
