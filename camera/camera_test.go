package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsArena(t *testing.T) {
	cam := New(800, 600, 10, 10)

	if cam.X != 5 || cam.Y != 5 {
		t.Errorf("expected camera at (5, 5), got (%f, %f)", cam.X, cam.Y)
	}
	// Height is the tighter axis: 600 / 10
	if cam.Zoom != 60 {
		t.Errorf("expected zoom 60, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(800, 600, 10, 10)

	sx, sy := cam.WorldToScreen(5, 5)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(0, 0)
	if !near(sx, 100) || !near(sy, 0) {
		t.Errorf("expected arena corner at (100, 0), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(800, 600, 10, 10)
	cam.ZoomBy(1.5)
	cam.Pan(30, -20)

	testCases := []struct{ sx, sy float32 }{
		{400, 300},
		{100, 100},
		{750, 550},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestCellAt(t *testing.T) {
	cam := New(800, 600, 10, 10)

	tests := []struct {
		name   string
		sx, sy float32
		x, y   int
		ok     bool
	}{
		{"center", 400, 300, 5, 5, true},
		{"first cell", 101, 1, 0, 0, true},
		{"last cell", 699, 599, 9, 9, true},
		{"left margin", 50, 300, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := cam.CellAt(tt.sx, tt.sy)
			if ok != tt.ok {
				t.Fatalf("CellAt ok = %v, want %v", ok, tt.ok)
			}
			if ok && (x != tt.x || y != tt.y) {
				t.Errorf("CellAt = (%d, %d), want (%d, %d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestPanStaysInsideArena(t *testing.T) {
	cam := New(800, 600, 10, 10)
	cam.Pan(-100000, 100000)

	if cam.X != 0 || cam.Y != 10 {
		t.Errorf("expected camera clamped to (0, 10), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 10, 10)

	cam.SetZoom(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.SetZoom(100000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(800, 600, 10, 10)
	cam.SetZoom(cam.MaxZoom)
	cam.Resize(200, 100)

	if cam.Zoom > cam.MaxZoom || cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f outside [%f, %f] after resize", cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 10, 10)
	cam.SetZoom(cam.MaxZoom)

	if !cam.IsVisible(5, 5, 0.5) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0.5, 0.5, 0.5) {
		t.Error("corner should be off screen when zoomed in")
	}
}
