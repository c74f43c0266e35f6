package fan

import "codeberg.org/mutker/znfsd/internal/errors"

const (
	ErrInvalidThresholds = errors.ErrorCode("fan_invalid_thresholds")
	ErrWriteFailed       = errors.ErrorCode("fan_register_write_failed")
)
