package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Counts is the sandbox state shown by the counts overlay, sampled once per
// refresh interval.
type Counts struct {
	Bodies      int
	Entities    int
	Constraints int
}

// Debug draws runtime overlays (FPS, heap, sandbox counts) at the top-right.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowCounts   bool

	// sample, when set, is called at each refresh to read the current counts.
	sample func() Counts

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastCntText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetCountsSource registers the function the counts overlay samples.
func (d *Debug) SetCountsSource(sample func() Counts) {
	d.sample = sample
}

func drawLine(text string, y int32) int32 {
	if text == "" {
		return y
	}
	screenW := int32(rl.GetScreenWidth())
	w := rl.MeasureText(text, overlayFontSize)
	rl.DrawText(text, screenW-w-overlayPadding, y, overlayFontSize, rl.Green)
	return y + overlayLineHeight
}

// Draw renders any enabled overlays. Call after the 3D scene in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if d.ShowCounts && d.lastCntText == "" {
		update = true
	}

	y := int32(overlayPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		y = drawLine(d.lastFpsText, y)
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		y = drawLine(d.lastMemText, y)
	}

	if d.ShowCounts && d.sample != nil {
		if update {
			c := d.sample()
			d.lastCntText = fmt.Sprintf("Bodies: %d  Entities: %d  Joints: %d", c.Bodies, c.Entities, c.Constraints)
		}
		drawLine(d.lastCntText, y)
	}
}
