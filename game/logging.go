package game

import (
	"log/slog"

	"github.com/pthm-cable/stitchmeat/feedback"
)

// logFeedback logs the environment reaction to the current damage.
func (g *Game) logFeedback() {
	audio := feedback.Audio(g.sim.TearCount())
	slog.Info("feedback",
		"tick", g.tick,
		"tear_count", g.sim.TearCount(),
		"light", g.intensity,
		"flickering", g.flicker.Active(),
		"distortion", audio.Distortion,
		"delay", audio.Delay,
		"cutoff", audio.Cutoff,
		"q", audio.Q,
		"playback_rate", audio.PlaybackRate,
	)
}
