package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstTear      BookmarkType = "first_tear"
	BookmarkTearStorm      BookmarkType = "tear_storm"
	BookmarkLimitReached   BookmarkType = "limit_reached"
	BookmarkFullyHealed    BookmarkType = "fully_healed"
	BookmarkHealingStalled BookmarkType = "healing_stalled"
)

const (
	stormFactor   = 2.0
	stormMinTears = 20
	stormMinAvg   = 3 // windows of history before a storm can be judged
	stallWindows  = 3
)

// Bookmark is a notable moment in a run, written to bookmarks.csv.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark", "type", string(b.Type), "tick", b.Tick, "description", b.Description)
}

// BookmarkDetector watches closed telemetry windows for damage and healing events.
type BookmarkDetector struct {
	tears []float64 // tear counts of recent windows, oldest first
	limit int

	seenTear   bool
	seenDrop   bool
	lastBroken int
	stalled    int
}

// NewBookmarkDetector keeps up to historySize windows for the rolling tear mean.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	return &BookmarkDetector{
		tears: make([]float64, 0, max(historySize, stormMinAvg)),
		limit: max(historySize, stormMinAvg),
	}
}

// Check analyzes the latest window and returns the bookmarks it triggers.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	mark := func(typ BookmarkType, format string, args ...any) {
		out = append(out, Bookmark{Type: typ, Tick: stats.WindowEndTick, Description: fmt.Sprintf(format, args...)})
	}

	if !bd.seenTear && stats.Tears > 0 {
		bd.seenTear = true
		mark(BookmarkFirstTear, "First damage: %d constraints torn", stats.Tears)
	}

	if len(bd.tears) >= stormMinAvg {
		if avg := stat.Mean(bd.tears, nil); avg > 0 && stats.Tears >= stormMinTears && float64(stats.Tears) > avg*stormFactor {
			mark(BookmarkTearStorm, "%d tears is %.1fx the rolling average (%.1f)", stats.Tears, float64(stats.Tears)/avg, avg)
		}
	}

	if !bd.seenDrop && stats.Dropped > 0 {
		bd.seenDrop = true
		mark(BookmarkLimitReached, "Constraint limit hit at %d constraints, %d scar appends dropped", stats.Constraints, stats.Dropped)
	}

	if bd.lastBroken > 0 && stats.Broken == 0 {
		mark(BookmarkFullyHealed, "All %d open tears healed", bd.lastBroken)
	}

	// Open tears, nothing regenerated, and the stretch bound is what refused.
	if stats.Broken > 0 && stats.Regenerations == 0 && stats.StretchSkips > 0 {
		bd.stalled++
		if bd.stalled == stallWindows {
			mark(BookmarkHealingStalled, "%d tears held open by stretch for %d windows", stats.Broken, stallWindows)
		}
	} else {
		bd.stalled = 0
	}

	bd.push(float64(stats.Tears))
	bd.lastBroken = stats.Broken
	return out
}

func (bd *BookmarkDetector) push(tears float64) {
	if len(bd.tears) == bd.limit {
		copy(bd.tears, bd.tears[1:])
		bd.tears = bd.tears[:len(bd.tears)-1]
	}
	bd.tears = append(bd.tears, tears)
}
