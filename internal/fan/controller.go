package fan

import (
	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/logger"
)

// Thresholds bound the dead band of the hysteresis, in °C.
type Thresholds struct {
	Low  float64
	High float64
}

// DefaultThresholds switch the fan on above 50°C and off below 45°C.
var DefaultThresholds = Thresholds{Low: 45.0, High: 50.0}

func (t Thresholds) Validate() error {
	if !(t.Low < t.High) {
		return errors.New().WithData(ErrInvalidThresholds, t)
	}

	return nil
}

// Next returns the state following current at temperature tempC.
func Next(current State, tempC float64, th Thresholds) State {
	switch {
	case current == Off && tempC > th.High:
		return On
	case current == On && tempC < th.Low:
		return Off
	default:
		return current
	}
}

// Controller is a two-state hysteresis controller. It re-issues the command
// for its state on every evaluation.
type Controller struct {
	act        Actuator
	thresholds Thresholds
	state      State
	logger     logger.Logger
}

func NewController(act Actuator, th Thresholds, log logger.Logger) (*Controller, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}

	return &Controller{
		act:        act,
		thresholds: th,
		state:      Off,
		logger:     log,
	}, nil
}

// Evaluate applies the transition rule for tempC and commands the resulting
// state. When the command fails the recorded state is left as it was and the
// previous state is returned with the error.
func (c *Controller) Evaluate(tempC float64) (State, error) {
	errFactory := errors.New()
	next := Next(c.state, tempC, c.thresholds)

	var err error
	if next == On {
		err = c.act.On()
	} else {
		err = c.act.Off()
	}
	if err != nil {
		return c.state, errFactory.Wrap(errors.ErrActuation, err).WithData(next.String())
	}

	if next != c.state {
		c.logger.Info().
			Float64("temperature", tempC).
			Stringer("from", c.state).
			Stringer("to", next).
			Msg("Fan state changed")
	}
	c.logger.Debug().Stringer("state", next).Msg("Fan command issued")

	c.state = next

	return next, nil
}
