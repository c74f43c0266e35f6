package display

import (
	"image"
	"image/color"

	"codeberg.org/mutker/znfsd/internal/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// OLED renders frames in memory and pushes complete frames to a Panel.
type OLED struct {
	panel Panel
}

func NewOLED(panel Panel) *OLED {
	return &OLED{panel: panel}
}

func (o *OLED) Draw(fn func(Surface) error) error {
	errFactory := errors.New()

	s := &frameSurface{img: image.NewGray(o.panel.Bounds())}
	defer s.release()

	if err := fn(s); err != nil {
		return err
	}

	frame := s.img
	if err := o.panel.Draw(frame.Bounds(), frame, frame.Bounds().Min); err != nil {
		return errFactory.Wrap(ErrPanelWrite, err)
	}

	return nil
}

type frameSurface struct {
	img *image.Gray
}

func (s *frameSurface) release() {
	s.img = nil
}

func (s *frameSurface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}

	return s.img.Bounds()
}

func (s *frameSurface) FillRect(r image.Rectangle, outline, fill color.Color) error {
	if s.img == nil {
		return errors.New().New(ErrSurfaceReleased)
	}

	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return nil
	}

	draw.Draw(s.img, r, image.NewUniform(fill), image.Point{}, draw.Src)

	edge := image.NewUniform(outline)
	for _, line := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(s.img, line, edge, image.Point{}, draw.Src)
	}

	return nil
}

// DrawText draws text with its top left corner at at.
func (s *frameSurface) DrawText(at image.Point, text string, face font.Face, c color.Color) error {
	if s.img == nil {
		return errors.New().New(ErrSurfaceReleased)
	}

	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(at.X, at.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	return nil
}
