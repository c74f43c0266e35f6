package fan

// Actuator switches the fan. Both commands are idempotent.
type Actuator interface {
	On() error
	Off() error
}

// Bus writes a single register of the fan board.
type Bus interface {
	WriteRegister(reg, value byte) error
}

// State is the commanded fan state.
type State int

const (
	Off State = iota
	On
)

func (s State) String() string {
	if s == On {
		return "on"
	}

	return "off"
}
