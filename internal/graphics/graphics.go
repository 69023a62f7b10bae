package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	windowWidth  = 1280
	windowHeight = 720
	targetFPS    = 60
)

// backgroundColor is a near-black dark blue, easier on the eyes than pure black.
var backgroundColor = rl.NewColor(3, 5, 8, 255)

// Run starts the window and main loop. Each frame it calls update (input
// handling, spawning, and the physics tick), then clears the screen and calls
// draw (3D scene plus overlays). This keeps the windowing layer separate from
// the sandbox logic: the sandbox never opens windows, the loop never simulates.
func Run(title string, update, draw func()) {
	rl.InitWindow(windowWidth, windowHeight, title)
	defer rl.CloseWindow()

	rl.DisableCursor() // capture the mouse for camera control
	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		draw()
		rl.EndDrawing()
	}
}
