package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"svg-globe/internal/app"
	"svg-globe/internal/config"
)

// Run opens a resizable window and runs the main loop until it is closed. Each frame it
// calls update with the frame time in seconds, then clears the screen and calls draw.
// ESC is left to the console; close via the window button.
func Run(w config.Window, update func(dt float64), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(w.FPS))

	for !rl.WindowShouldClose() {
		update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		draw()
		rl.EndDrawing()
	}
}

// Poll reads this frame's mouse, touch and window state.
func Poll() app.InputState {
	pos := rl.GetMousePosition()
	return app.InputState{
		MouseX:   pos.X,
		MouseY:   pos.Y,
		DeltaX:   rl.GetMouseDelta().X,
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Wheel:    rl.GetMouseWheelMove(),
		Touches:  int(rl.GetTouchPointCount()),
		Resized:  rl.IsWindowResized(),
		Width:    int(rl.GetScreenWidth()),
		Height:   int(rl.GetScreenHeight()),
	}
}
