package telemetry

import (
	"math"
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/znfsd/internal/errors"
)

// DefaultThermalZone is the SoC temperature on Raspberry Pi class boards.
const DefaultThermalZone = "/sys/class/thermal/thermal_zone0/temp"

// ThermalZone reads a sysfs thermal zone file holding millidegrees Celsius.
type ThermalZone struct {
	Path string
}

func (z ThermalZone) ReadMilliCelsius() (float64, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(z.Path)
	if err != nil {
		return 0, errFactory.Wrap(ErrThermalRead, err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0, errFactory.WithData(ErrThermalParse, "empty reading from "+z.Path)
	}

	milli, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errFactory.Wrap(ErrThermalParse, err)
	}
	if math.IsNaN(milli) || math.IsInf(milli, 0) {
		return 0, errFactory.WithData(ErrThermalParse, raw)
	}

	return milli, nil
}
