package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies a timed part of the simulation step.
type Phase uint8

// Phases in step order.
const (
	PhaseRegen Phase = iota
	PhaseInput
	PhasePhysics
	PhaseSplatter
	PhaseFeedback
	PhaseTelemetry

	phaseCount
	noPhase Phase = 255
)

var phaseNames = [phaseCount]string{"regen", "input", "physics", "splatter", "feedback", "telemetry"}

// String returns the phase name used in logs and CSV columns.
func (ph Phase) String() string {
	if ph < phaseCount {
		return phaseNames[ph]
	}
	return "unknown"
}

// tickSample is the timing of one tick.
type tickSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector keeps per-phase timings for the last windowSize ticks in
// a ring buffer.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// Non-positive sizes fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickSample, windowSize), phase: noPhase}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickSample{}
	p.tickStart = time.Now()
	p.phase = noPhase
}

// StartPhase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < phaseCount {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P90TickDuration time.Duration

	PhaseAvg map[Phase]time.Duration
	PhasePct map[Phase]float64 // share of the average tick, in percent

	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats summarises the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[Phase]time.Duration, phaseCount),
		PhasePct:      make(map[Phase]float64, phaseCount),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	ticks := make([]float64, p.count)
	var sum tickSample
	for i, t := range p.ring[:p.count] {
		ticks[i] = float64(t.total)
		sum.total += t.total
		for ph, d := range t.phases {
			sum.phases[ph] += d
		}
	}
	sort.Float64s(ticks)

	n := time.Duration(p.count)
	s.AvgTickDuration = sum.total / n
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P90TickDuration = time.Duration(stat.Quantile(0.9, stat.Empirical, ticks, nil))

	for ph, d := range sum.phases {
		if d == 0 {
			continue
		}
		avg := d / n
		s.PhaseAvg[Phase(ph)] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[Phase(ph)] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary at Info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p90_tick_us", s.P90TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P90TickUS    int64   `csv:"p90_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	RegenPct     float64 `csv:"regen_pct"`
	InputPct     float64 `csv:"input_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	SplatterPct  float64 `csv:"splatter_pct"`
	FeedbackPct  float64 `csv:"feedback_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P90TickUS:    s.P90TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		RegenPct:     s.PhasePct[PhaseRegen],
		InputPct:     s.PhasePct[PhaseInput],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		SplatterPct:  s.PhasePct[PhaseSplatter],
		FeedbackPct:  s.PhasePct[PhaseFeedback],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
