package display

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/netrate"
	"codeberg.org/mutker/znfsd/internal/telemetry"
	"golang.org/x/image/font"
)

const missing = "--"

var (
	headerOrigin  = image.Pt(2, 2)
	networkOrigin = image.Pt(2, 14)
)

// Page is the text of one status screen.
type Page struct {
	Header  string
	Network string
}

// Compose builds the page for a tick. Even ticks show CPU and temperature,
// odd ticks memory and uptime. The network line is empty until a rate is
// available for iface.
func Compose(tick uint64, snap telemetry.Snapshot, iface string, rate netrate.Rate, haveRate bool) Page {
	var p Page

	if tick%2 == 0 {
		p.Header = fmt.Sprintf("CPU: %s%% temp:%s°C",
			formatField(snap, telemetry.FieldCPU, "%.1f", snap.CPUPercent),
			formatField(snap, telemetry.FieldTemp, "%.2f", snap.TempCelsius))
	} else {
		uptime := missing
		if snap.Has(telemetry.FieldUptime) {
			uptime = FormatUptime(snap.Uptime)
		}
		p.Header = fmt.Sprintf("MEM: %s%% up:%s",
			formatField(snap, telemetry.FieldMem, "%.1f", snap.MemPercent), uptime)
	}

	if haveRate {
		p.Network = fmt.Sprintf("%s: Tx%s, Rx%s",
			iface, netrate.HumanizeBytes(rate.Sent), netrate.HumanizeBytes(rate.Recv))
	}

	return p
}

func formatField(snap telemetry.Snapshot, field telemetry.Field, format string, v float64) string {
	if !snap.Has(field) {
		return missing
	}

	return fmt.Sprintf(format, v)
}

// FormatUptime renders d as H:MM:SS with unbounded hours.
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < 0 {
		d = 0
	}

	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second

	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Renderer draws pages onto a Canvas.
type Renderer struct {
	canvas Canvas
	face   font.Face
}

func NewRenderer(canvas Canvas, face font.Face) *Renderer {
	return &Renderer{canvas: canvas, face: face}
}

// Render draws p as one frame: a black box with a white outline and both
// lines in white.
func (r *Renderer) Render(p Page) error {
	err := r.canvas.Draw(func(s Surface) error {
		if err := s.FillRect(s.Bounds(), color.White, color.Black); err != nil {
			return err
		}
		if err := s.DrawText(headerOrigin, p.Header, r.face, color.White); err != nil {
			return err
		}

		return s.DrawText(networkOrigin, p.Network, r.face, color.White)
	})
	if err != nil {
		return errors.New().Wrap(errors.ErrRender, err)
	}

	return nil
}
