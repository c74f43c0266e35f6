package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"codeberg.org/mutker/znfsd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Failed to actuate fan", f.New(errors.ErrActuation).Error())
	assert.Equal(t, "invalid_log_level: loud", f.WithData(errors.ErrInvalidLogLevel, "loud").Error())

	cause := stderrors.New("bus timeout")
	assert.Equal(t, "Failed to actuate fan: bus timeout", f.Wrap(errors.ErrActuation, cause).Error())
	assert.Equal(t, "Failed to actuate fan: fan: bus timeout",
		f.Wrap(errors.ErrActuation, cause).WithData("fan").Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrRender, "custom").Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("no such file")
	err := errors.New().Wrap(errors.ErrSensor, cause)

	assert.Equal(t, errors.ErrSensor, err.Code())
	assert.True(t, errors.Is(err, cause))
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.Wrap(errors.ErrActuation, stderrors.New("nack"))
	outer := fmt.Errorf("tick 3: %w", f.Wrap(errors.ErrInitFailed, inner))

	assert.True(t, errors.HasCode(outer, errors.ErrInitFailed))
	assert.True(t, errors.HasCode(outer, errors.ErrActuation))
	assert.False(t, errors.HasCode(outer, errors.ErrRender))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrRender))
	assert.False(t, errors.HasCode(nil, errors.ErrRender))

	var coded errors.Error
	require.True(t, errors.As(outer, &coded))
	assert.Equal(t, errors.ErrInitFailed, coded.Code())
}
