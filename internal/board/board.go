// Package board owns the appliance hardware: one I2C bus shared by the fan
// controller and the OLED panel. It is opened once at startup and closed at
// shutdown.
package board

import (
	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/logger"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

const (
	FanAddress     uint16 = 0x0d
	DisplayAddress uint16 = 0x3c
	DisplayWidth          = 128
	DisplayHeight         = 32
)

// Board holds the long lived hardware handles.
type Board struct {
	bus     i2c.BusCloser
	fan     *RegisterBus
	display *ssd1306.Dev
	logger  logger.Logger
}

// Open initializes the host drivers, opens the named I2C bus and attaches
// the fan board and the display. Any failure is an initialization error.
func Open(busName string, log logger.Logger) (*Board, error) {
	errFactory := errors.New()

	if _, err := host.Init(); err != nil {
		return nil, errFactory.Wrap(errors.ErrInitFailed, err).WithData("host drivers")
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitFailed, err).WithData("i2c bus " + busName)
	}

	oled, err := ssd1306.NewI2C(bus, &ssd1306.Opts{
		W:       DisplayWidth,
		H:       DisplayHeight,
		Rotated: true,
	})
	if err != nil {
		bus.Close()
		return nil, errFactory.Wrap(errors.ErrInitFailed, err).WithData("ssd1306 display")
	}

	log.Info().
		Str("bus", busName).
		Uint16("fan_address", FanAddress).
		Uint16("display_address", DisplayAddress).
		Msg("Board initialized")

	return &Board{
		bus:     bus,
		fan:     NewRegisterBus(bus, FanAddress),
		display: oled,
		logger:  log,
	}, nil
}

// Fan returns the register bus of the fan board.
func (b *Board) Fan() *RegisterBus {
	return b.fan
}

// Display returns the OLED panel.
func (b *Board) Display() *ssd1306.Dev {
	return b.display
}

// Close blanks the display and releases the bus. The fan is left as it was
// last commanded.
func (b *Board) Close() error {
	errFactory := errors.New()

	var errs []error
	if err := b.display.Halt(); err != nil {
		errs = append(errs, err)
	}
	if err := b.bus.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errFactory.Wrap(errors.ErrShutdownFailed, errors.Join(errs...))
	}

	b.logger.Debug().Msg("Board closed")

	return nil
}
