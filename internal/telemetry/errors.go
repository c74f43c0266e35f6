package telemetry

import "codeberg.org/mutker/znfsd/internal/errors"

const (
	ErrThermalRead  = errors.ErrorCode("telemetry_thermal_read_failed")
	ErrThermalParse = errors.ErrorCode("telemetry_thermal_parse_failed")
	ErrHostRead     = errors.ErrorCode("telemetry_host_read_failed")
)
