package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstDelivery        BookmarkType = "first_delivery"
	BookmarkTrailEstablished     BookmarkType = "trail_established"
	BookmarkDeliveryBreakthrough BookmarkType = "delivery_breakthrough"
	BookmarkDeliveryStall        BookmarkType = "delivery_stall"
)

// stallWindows is how many delivery-free windows count as a stall.
const stallWindows = 3

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a colony run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	delivered      bool
	trailFollowed  bool
	dryWindows     int
	stallSignalled bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkFirstDelivery,
		bd.checkTrailEstablished,
		bd.checkDeliveryBreakthrough,
		bd.checkDeliveryStall,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFirstDelivery(stats WindowStats) *Bookmark {
	if bd.delivered || stats.Deliveries == 0 {
		return nil
	}
	bd.delivered = true
	return &Bookmark{
		Type:        BookmarkFirstDelivery,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First food delivered, %d this window", stats.Deliveries),
	}
}

func (bd *BookmarkDetector) checkTrailEstablished(stats WindowStats) *Bookmark {
	if bd.trailFollowed || stats.GradientMoves == 0 || stats.GradientMoves <= stats.RandomMoves {
		return nil
	}
	bd.trailFollowed = true
	return &Bookmark{
		Type:        BookmarkTrailEstablished,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Trail moves %d outnumber random moves %d", stats.GradientMoves, stats.RandomMoves),
	}
}

func (bd *BookmarkDetector) checkDeliveryBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Deliveries
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Deliveries) > avg*2.0 && stats.Deliveries >= 3 {
		return &Bookmark{
			Type:        BookmarkDeliveryBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Deliveries %d are %.1fx average (%.2f)", stats.Deliveries, float64(stats.Deliveries)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDeliveryStall(stats WindowStats) *Bookmark {
	if stats.Deliveries > 0 {
		bd.dryWindows = 0
		bd.stallSignalled = false
		return nil
	}
	if !bd.delivered {
		return nil
	}

	bd.dryWindows++
	if bd.dryWindows < stallWindows || bd.stallSignalled {
		return nil
	}
	bd.stallSignalled = true
	return &Bookmark{
		Type:        BookmarkDeliveryStall,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No deliveries for %d windows, food_in_base stuck at %d", bd.dryWindows, stats.FoodInBase),
	}
}
