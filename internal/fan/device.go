package fan

import (
	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/logger"
)

const (
	// Register holds the fan switch on the fan board.
	Register byte = 0x08

	valueOn  byte = 0x01
	valueOff byte = 0x00

	writeAttempts = 2
)

// Device drives the fan board through its register bus. Every command is
// written twice so a single dropped write still reaches the board.
type Device struct {
	bus    Bus
	reg    byte
	logger logger.Logger
}

func NewDevice(bus Bus, log logger.Logger) *Device {
	return &Device{bus: bus, reg: Register, logger: log}
}

func (d *Device) On() error {
	return d.write(valueOn)
}

func (d *Device) Off() error {
	return d.write(valueOff)
}

// write fails only when every attempt failed.
func (d *Device) write(value byte) error {
	var errs []error
	for i := 0; i < writeAttempts; i++ {
		if err := d.bus.WriteRegister(d.reg, value); err != nil {
			errs = append(errs, err)
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case writeAttempts:
		return errors.New().Wrap(ErrWriteFailed, errors.Join(errs...))
	default:
		d.logger.Warn().
			Err(errs[0]).
			Uint8("register", d.reg).
			Uint8("value", value).
			Msg("Dropped fan register write")
		return nil
	}
}
