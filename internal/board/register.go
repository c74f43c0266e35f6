package board

import (
	"periph.io/x/conn/v3/i2c"
)

// RegisterBus writes single byte registers of one I2C device.
type RegisterBus struct {
	dev *i2c.Dev
}

func NewRegisterBus(bus i2c.Bus, addr uint16) *RegisterBus {
	return &RegisterBus{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

// WriteRegister performs one write transaction of reg followed by value.
func (r *RegisterBus) WriteRegister(reg, value byte) error {
	return r.dev.Tx([]byte{reg, value}, nil)
}
