package scheduler

import (
	"context"
	"sort"
	"time"

	"codeberg.org/mutker/znfsd/internal/display"
	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/fan"
	"codeberg.org/mutker/znfsd/internal/logger"
	"codeberg.org/mutker/znfsd/internal/netrate"
	"codeberg.org/mutker/znfsd/internal/telemetry"
	"github.com/dustin/go-humanize"
)

// State is owned by the scheduler and carried from tick to tick.
type State struct {
	// TickIndex selects the page; it only ever increments.
	TickIndex uint64
	// Fan is the last state reported by the fan controller. Ticks without a
	// temperature leave it as it was.
	Fan fan.State
}

// Report describes what one tick did.
type Report struct {
	Index     uint64
	Snapshot  telemetry.Snapshot
	Rate      netrate.Rate
	HaveRate  bool
	Fan       fan.State
	FanIssued bool
	Page      display.Page
	SensorErr error
	FanErr    error
	RenderErr error
}

type Config struct {
	Interval  time.Duration
	Interface string
}

type Scheduler struct {
	cfg      Config
	sampler  Sampler
	tracker  *netrate.Tracker
	fan      FanController
	renderer PageRenderer
	clock    Clock
	logger   logger.Logger
	state    State
}

func New(
	cfg Config,
	sampler Sampler,
	tracker *netrate.Tracker,
	fanCtl FanController,
	renderer PageRenderer,
	clock Clock,
	log logger.Logger,
) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New().WithData(errors.ErrInvalidInterval, cfg.Interval)
	}

	return &Scheduler{
		cfg:      cfg,
		sampler:  sampler,
		tracker:  tracker,
		fan:      fanCtl,
		renderer: renderer,
		clock:    clock,
		logger:   log,
	}, nil
}

// State returns a copy of the scheduler state.
func (s *Scheduler) State() State {
	return s.state
}

// Run ticks until ctx is cancelled, sleeping the configured interval after
// every tick. Cancellation is only observed between ticks, so a tick's fan
// command and frame are always applied completely. No fan command is sent on
// exit; the fan keeps its last commanded state.
//
// Hardware writes have no timeout: a hung bus write blocks the loop, and with
// it the termination check, until the write returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.cfg.Interval).
		Str("interface", s.cfg.Interface).
		Msg("Status loop started")

	for {
		if ctx.Err() != nil {
			break
		}

		s.logReport(s.Tick(ctx))

		if err := s.clock.Sleep(ctx, s.cfg.Interval); err != nil {
			break
		}
	}

	s.logger.Info().Uint64("ticks", s.state.TickIndex).Msg("Status loop stopped")

	return nil
}

// Tick runs one sample, rate, fan, render pass. Errors are recorded in the
// report and never stop the pass.
func (s *Scheduler) Tick(_ context.Context) Report {
	r := Report{Index: s.state.TickIndex}

	r.Snapshot, r.SensorErr = s.sampler.Sample(s.clock.Now())

	if r.Snapshot.Has(telemetry.FieldNetwork) {
		r.Rate, r.HaveRate = s.updateRates(r.Snapshot)
	}

	if r.Snapshot.Has(telemetry.FieldTemp) {
		s.state.Fan, r.FanErr = s.fan.Evaluate(r.Snapshot.TempCelsius)
		r.FanIssued = true
	}
	r.Fan = s.state.Fan

	r.Page = display.Compose(r.Index, r.Snapshot, s.cfg.Interface, r.Rate, r.HaveRate)
	r.RenderErr = s.renderer.Render(r.Page)

	s.state.TickIndex++

	return r
}

// updateRates advances the baseline of every interface in the snapshot and
// returns the rate of the displayed interface.
func (s *Scheduler) updateRates(snap telemetry.Snapshot) (netrate.Rate, bool) {
	for _, name := range s.tracker.Interfaces() {
		if _, ok := snap.Network[name]; !ok {
			s.tracker.Forget(name)
		}
	}

	names := make([]string, 0, len(snap.Network))
	for name := range snap.Network {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		shown    netrate.Rate
		haveRate bool
	)
	for _, name := range names {
		rate, ok := s.tracker.Compute(name, snap.Network[name], snap.TakenAt)
		if name == s.cfg.Interface {
			shown, haveRate = rate, ok
		}
		if ok {
			s.logger.Debug().
				Str("interface", name).
				Str("tx", humanize.IBytes(uint64(rate.Sent))+"/s").
				Str("rx", humanize.IBytes(uint64(rate.Recv))+"/s").
				Msg("Interface rate")
		}
	}

	return shown, haveRate
}

func (s *Scheduler) logReport(r Report) {
	logError(s.logger, r.SensorErr, "Telemetry incomplete, affected fields blanked for this tick")
	logError(s.logger, r.FanErr, "Fan command failed, retrying next tick")
	logError(s.logger, r.RenderErr, "Frame dropped")

	snap := r.Snapshot
	if !logger.Enabled(logger.DebugLevel) {
		s.logger.Info().
			Float64("temperature", snap.TempCelsius).
			Stringer("fan", r.Fan).
			Str("network", r.Page.Network).
			Msg("")
		return
	}

	s.logger.Debug().
		Uint64("tick", r.Index).
		Float64("cpu_percent", snap.CPUPercent).
		Float64("mem_percent", snap.MemPercent).
		Float64("temperature", snap.TempCelsius).
		Str("uptime", display.FormatUptime(snap.Uptime)).
		Strs("valid", snap.Valid.Names()).
		Bool("fan_issued", r.FanIssued).
		Stringer("fan", r.Fan).
		Str("header", r.Page.Header).
		Str("network", r.Page.Network).
		Msg("")
}

func logError(log logger.Logger, err error, msg string) {
	if err == nil {
		return
	}

	var coded errors.Error
	if errors.As(err, &coded) {
		log.WarnWithCode(coded).Msg(msg)
		return
	}
	log.Warn().Err(err).Msg(msg)
}
