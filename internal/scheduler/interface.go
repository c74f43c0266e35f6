package scheduler

import (
	"time"

	"codeberg.org/mutker/znfsd/internal/display"
	"codeberg.org/mutker/znfsd/internal/fan"
	"codeberg.org/mutker/znfsd/internal/telemetry"
)

type Sampler interface {
	Sample(now time.Time) (telemetry.Snapshot, error)
}

type FanController interface {
	Evaluate(tempC float64) (fan.State, error)
}

type PageRenderer interface {
	Render(p display.Page) error
}
