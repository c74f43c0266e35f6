package display

import "codeberg.org/mutker/znfsd/internal/errors"

const (
	ErrSurfaceReleased = errors.ErrorCode("display_surface_released")
	ErrPanelWrite      = errors.ErrorCode("display_panel_write_failed")
	ErrFontLoad        = errors.ErrorCode("display_font_load_failed")
)
