package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Surface is a drawing area valid only inside a Canvas.Draw callback.
type Surface interface {
	Bounds() image.Rectangle
	FillRect(r image.Rectangle, outline, fill color.Color) error
	DrawText(at image.Point, text string, face font.Face, c color.Color) error
}

// Canvas hands out a Surface for the duration of fn. The frame is shown only
// when fn returns nil; otherwise it is discarded.
type Canvas interface {
	Draw(fn func(Surface) error) error
}

// Panel is the physical display, e.g. *ssd1306.Dev.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}
